package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SubCategory is a nested entry under a category; it has no document of its
// own.
type SubCategory struct {
	NameEnglish string `bson:"name_english"        json:"nameEnglish"`
	NameArabic  string `bson:"name_arabic"         json:"nameArabic"`
	ImageURL    string `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
}

// Category is a browse category for offers. Order is the position in the
// console's drag-sorted list; reordering rewrites contiguous order values.
type Category struct {
	ID            bson.ObjectID `bson:"_id,omitempty"           json:"id"`
	NameEnglish   string        `bson:"name_english"            json:"nameEnglish"`
	NameArabic    string        `bson:"name_arabic"             json:"nameArabic"`
	ImageURL      string        `bson:"image_url,omitempty"     json:"imageUrl,omitempty"`
	Subcategories []SubCategory `bson:"subcategories,omitempty" json:"subcategories,omitempty"`
	Order         int           `bson:"order"                   json:"order"`
	IsActive      bool          `bson:"is_active"               json:"isActive"`
	CreatedAt     time.Time     `bson:"created_at"              json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updated_at"              json:"updatedAt"`
}
