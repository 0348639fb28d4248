package model

import "time"

// Student statuses as rendered by the console.
const (
	StudentStatusActive   = "Active"
	StudentStatusInactive = "Inactive"
)

// Student is the profile document for a student account, keyed by the
// account id like the vendor profile.
type Student struct {
	ID         string    `bson:"_id"                  json:"id"`
	Name       string    `bson:"name"                 json:"name"`
	Email      string    `bson:"email"                json:"email"`
	University string    `bson:"university,omitempty" json:"university,omitempty"`
	Status     string    `bson:"status"               json:"status"`
	CreatedAt  time.Time `bson:"created_at"           json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at"           json:"updatedAt"`
}
