package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Offer discount types.
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeAmount     = "amount"
)

// Offer statuses.
const (
	OfferStatusActive   = "active"
	OfferStatusInactive = "inactive"
)

// Offer is a vendor's discount offer shown to students. Titles and
// descriptions are bilingual; the arabic variants are optional.
type Offer struct {
	ID               bson.ObjectID `bson:"_id,omitempty"            json:"id"`
	VendorID         string        `bson:"vendor_id"                json:"vendorId"`
	TitleEn          string        `bson:"title_en"                 json:"titleEn"`
	TitleAr          string        `bson:"title_ar,omitempty"       json:"titleAr,omitempty"`
	DescriptionEn    string        `bson:"description_en,omitempty" json:"descriptionEn,omitempty"`
	DescriptionAr    string        `bson:"description_ar,omitempty" json:"descriptionAr,omitempty"`
	BannerImage      string        `bson:"banner_image,omitempty"   json:"bannerImage,omitempty"`
	DiscountType     string        `bson:"discount_type"            json:"discountType"`
	DiscountValue    float64       `bson:"discount_value"           json:"discountValue"`
	Categories       []string      `bson:"categories,omitempty"     json:"categories,omitempty"`
	MainCategory     string        `bson:"main_category,omitempty"  json:"mainCategory,omitempty"`
	IsTrending       bool          `bson:"is_trending"              json:"isTrending"`
	IsTopRated       bool          `bson:"is_top_rated"             json:"isTopRated"`
	Status           string        `bson:"status"                   json:"status"`
	StartAt          *time.Time    `bson:"start_at,omitempty"       json:"startAt,omitempty"`
	EndAt            *time.Time    `bson:"end_at,omitempty"         json:"endAt,omitempty"`
	TotalRedemptions int64         `bson:"total_redemptions"        json:"totalRedemptions"`
	ViewsCount       int64         `bson:"views_count"              json:"viewsCount"`
	CreatedAt        time.Time     `bson:"created_at"               json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updated_at"               json:"updatedAt"`
}
