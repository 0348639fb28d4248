package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/studentperks/console-api/internal/model"
)

// OfferRepository defines the offer document operations.
type OfferRepository interface {
	CreateOffer(ctx context.Context, offer *model.Offer) (*model.Offer, error)
	GetOffer(ctx context.Context, id string) (*model.Offer, error)
	ListOffersByVendor(ctx context.Context, vendorID string) ([]*model.Offer, error)
	UpdateOffer(ctx context.Context, id string, params UpdateOfferParams) (*model.Offer, error)
	DeleteOffer(ctx context.Context, id string) (*model.Offer, error)
}

// UpdateOfferParams defines the optional parameters for updating an offer.
// Only the fields that are not nil will be updated.
type UpdateOfferParams struct {
	TitleEn       *string
	TitleAr       *string
	DescriptionEn *string
	DescriptionAr *string
	BannerImage   *string
	DiscountType  *string
	DiscountValue *float64
	Categories    *[]string
	MainCategory  *string
	IsTrending    *bool
	IsTopRated    *bool
	Status        *string
	StartAt       *time.Time
	EndAt         *time.Time
}

const offerCollection = "offers"

type offerMongoRepository struct {
	db *mongo.Database
}

func NewOfferMongoRepository(db *mongo.Database) OfferRepository {
	return &offerMongoRepository{db: db}
}

func (r *offerMongoRepository) CreateOffer(ctx context.Context, offer *model.Offer) (*model.Offer, error) {
	now := time.Now()
	offer.CreatedAt = now
	offer.UpdatedAt = now

	if offer.Status == "" {
		offer.Status = model.OfferStatusActive
	}

	result, err := r.db.Collection(offerCollection).InsertOne(ctx, offer)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		offer.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return offer, nil
}

func (r *offerMongoRepository) GetOffer(ctx context.Context, id string) (*model.Offer, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(offerCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var offer model.Offer
	if err := result.Decode(&offer); err != nil {
		return nil, err
	}

	return &offer, nil
}

func (r *offerMongoRepository) ListOffersByVendor(ctx context.Context, vendorID string) ([]*model.Offer, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(offerCollection).Find(ctx, bson.M{"vendor_id": vendorID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var offers []*model.Offer
	for cursor.Next(ctx) {
		var offer model.Offer
		if err := cursor.Decode(&offer); err != nil {
			return nil, err
		}
		offers = append(offers, &offer)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}

func (r *offerMongoRepository) UpdateOffer(
	ctx context.Context,
	id string,
	params UpdateOfferParams,
) (*model.Offer, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.TitleEn != nil {
		updateMap["title_en"] = *params.TitleEn
	}
	if params.TitleAr != nil {
		updateMap["title_ar"] = *params.TitleAr
	}
	if params.DescriptionEn != nil {
		updateMap["description_en"] = *params.DescriptionEn
	}
	if params.DescriptionAr != nil {
		updateMap["description_ar"] = *params.DescriptionAr
	}
	if params.BannerImage != nil {
		updateMap["banner_image"] = *params.BannerImage
	}
	if params.DiscountType != nil {
		updateMap["discount_type"] = *params.DiscountType
	}
	if params.DiscountValue != nil {
		updateMap["discount_value"] = *params.DiscountValue
	}
	if params.Categories != nil {
		updateMap["categories"] = *params.Categories
	}
	if params.MainCategory != nil {
		updateMap["main_category"] = *params.MainCategory
	}
	if params.IsTrending != nil {
		updateMap["is_trending"] = *params.IsTrending
	}
	if params.IsTopRated != nil {
		updateMap["is_top_rated"] = *params.IsTopRated
	}
	if params.Status != nil {
		updateMap["status"] = *params.Status
	}
	if params.StartAt != nil {
		updateMap["start_at"] = *params.StartAt
	}
	if params.EndAt != nil {
		updateMap["end_at"] = *params.EndAt
	}

	if len(updateMap) == 0 {
		return r.GetOffer(ctx, id)
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(offerCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var offer model.Offer
	if err := result.Decode(&offer); err != nil {
		return nil, err
	}

	return &offer, nil
}

func (r *offerMongoRepository) DeleteOffer(ctx context.Context, id string) (*model.Offer, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(offerCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var offer model.Offer
	if err := result.Decode(&offer); err != nil {
		return nil, err
	}

	return &offer, nil
}
