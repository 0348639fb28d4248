package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/studentperks/console-api/internal/model"
)

// VendorRepository defines the vendor profile document operations.
type VendorRepository interface {
	CreateVendor(ctx context.Context, vendor *model.Vendor) (*model.Vendor, error)
	GetVendor(ctx context.Context, id string) (*model.Vendor, error)
	ListVendors(ctx context.Context, params ListParams) ([]*model.Vendor, string, error)
	UpdateVendor(ctx context.Context, id string, params UpdateVendorParams) (*model.Vendor, error)
}

// UpdateVendorParams defines the optional parameters for updating a vendor.
// Only the fields that are not nil will be updated.
type UpdateVendorParams struct {
	Name           *string
	Status         *string
	Contact        *string
	PIN            *string
	ProfilePicture *string
	LogoKey        *string
	CoverKey       *string
}

const vendorCollection = "vendors"

type vendorMongoRepository struct {
	db *mongo.Database
}

func NewVendorMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) VendorRepository {
	collection := db.Collection(vendorCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create vendor indexes")
	}

	return &vendorMongoRepository{db: db}
}

func (r *vendorMongoRepository) CreateVendor(ctx context.Context, vendor *model.Vendor) (*model.Vendor, error) {
	now := time.Now()
	vendor.CreatedAt = now
	vendor.UpdatedAt = now

	if vendor.Status == "" {
		vendor.Status = model.VendorStatusActive
	}

	if _, err := r.db.Collection(vendorCollection).InsertOne(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

func (r *vendorMongoRepository) GetVendor(ctx context.Context, id string) (*model.Vendor, error) {
	result := r.db.Collection(vendorCollection).FindOne(ctx, bson.M{"_id": id})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var vendor model.Vendor
	if err := result.Decode(&vendor); err != nil {
		return nil, err
	}

	return &vendor, nil
}

func (r *vendorMongoRepository) ListVendors(
	ctx context.Context,
	params ListParams,
) ([]*model.Vendor, string, error) {
	limit := params.limit()

	filter := bson.M{}
	if params.Cursor != "" {
		filter["_id"] = bson.M{"$gt": params.Cursor}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.db.Collection(vendorCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, "", err
	}
	defer cursor.Close(ctx)

	var vendors []*model.Vendor
	for cursor.Next(ctx) {
		var vendor model.Vendor
		if err := cursor.Decode(&vendor); err != nil {
			return nil, "", err
		}
		vendors = append(vendors, &vendor)
	}

	if err := cursor.Err(); err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if int64(len(vendors)) == limit {
		nextCursor = vendors[len(vendors)-1].ID
	}

	return vendors, nextCursor, nil
}

func (r *vendorMongoRepository) UpdateVendor(
	ctx context.Context,
	id string,
	params UpdateVendorParams,
) (*model.Vendor, error) {
	// Build update query
	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Status != nil {
		updateMap["status"] = *params.Status
	}
	if params.Contact != nil {
		updateMap["contact"] = *params.Contact
	}
	if params.PIN != nil {
		updateMap["pin"] = *params.PIN
	}
	if params.ProfilePicture != nil {
		updateMap["profile_picture"] = *params.ProfilePicture
	}
	if params.LogoKey != nil {
		updateMap["logo_key"] = *params.LogoKey
	}
	if params.CoverKey != nil {
		updateMap["cover_key"] = *params.CoverKey
	}

	if len(updateMap) == 0 {
		return r.GetVendor(ctx, id)
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(vendorCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var vendor model.Vendor
	if err := result.Decode(&vendor); err != nil {
		return nil, err
	}

	return &vendor, nil
}
