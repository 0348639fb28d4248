package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Redemption records one student redeeming one offer. The console's
// transactions view is a read-only list over this collection; redemptions are
// written by the student-facing application.
type Redemption struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	OfferID   string        `bson:"offer_id"      json:"offerId"`
	VendorID  string        `bson:"vendor_id"     json:"vendorId"`
	StudentID string        `bson:"student_id"    json:"studentId"`
	CreatedAt time.Time     `bson:"created_at"    json:"createdAt"`
}
