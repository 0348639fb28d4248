package model

import "time"

// Vendor statuses as rendered by the console.
const (
	VendorStatusActive   = "Active"
	VendorStatusInactive = "Inactive"
)

// Vendor is the profile document written alongside a vendor's identity
// provider account. The document id is the account id; the two are created
// together by the provisioning flow.
type Vendor struct {
	ID             string    `bson:"_id"                       json:"id"`
	Name           string    `bson:"name"                      json:"name"`
	Email          string    `bson:"email"                     json:"email"`
	Status         string    `bson:"status"                    json:"status"`
	Contact        string    `bson:"contact,omitempty"         json:"contact,omitempty"`
	PIN            string    `bson:"pin,omitempty"             json:"pin,omitempty"`
	ProfilePicture string    `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`
	LogoKey        string    `bson:"logo_key,omitempty"        json:"logoKey,omitempty"`
	CoverKey       string    `bson:"cover_key,omitempty"       json:"coverKey,omitempty"`
	CreatedAt      time.Time `bson:"created_at"                json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at"                json:"updatedAt"`
}
