package model

import "time"

// BannerImage carries the storage keys of the rendered banner variants.
type BannerImage struct {
	Mobile  string `bson:"mobile"  json:"mobile"`
	Desktop string `bson:"desktop" json:"desktop"`
}

// BannerItem is one entry of the home screen banner carousel.
type BannerItem struct {
	BannerID string      `bson:"banner_id" json:"bannerId"`
	OfferID  string      `bson:"offer_id"  json:"offerId"`
	Images   BannerImage `bson:"images"    json:"images"`
	AltText  string      `bson:"alt_text"  json:"altText"`
	IsActive bool        `bson:"is_active" json:"isActive"`
}

// BannersConfig is the single CMS document holding the ordered banner list.
type BannersConfig struct {
	LastUpdated time.Time    `bson:"last_updated" json:"lastUpdated"`
	Banners     []BannerItem `bson:"banners"      json:"banners"`
}
