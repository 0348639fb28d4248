package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/studentperks/console-api/internal/model"
)

// RedemptionRepository reads the redemption log written by the student app.
// The console never writes redemptions.
type RedemptionRepository interface {
	ListRedemptions(ctx context.Context, params ListParams) ([]*model.Redemption, string, error)
}

const redemptionCollection = "redemptions"

type redemptionMongoRepository struct {
	db *mongo.Database
}

func NewRedemptionMongoRepository(db *mongo.Database) RedemptionRepository {
	return &redemptionMongoRepository{db: db}
}

func (r *redemptionMongoRepository) ListRedemptions(
	ctx context.Context,
	params ListParams,
) ([]*model.Redemption, string, error) {
	limit := params.limit()

	filter := bson.M{}
	if params.Cursor != "" {
		cursorID, err := bson.ObjectIDFromHex(params.Cursor)
		if err != nil {
			return nil, "", err
		}
		filter["_id"] = bson.M{"$gt": cursorID}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.db.Collection(redemptionCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, "", err
	}
	defer cursor.Close(ctx)

	var redemptions []*model.Redemption
	for cursor.Next(ctx) {
		var redemption model.Redemption
		if err := cursor.Decode(&redemption); err != nil {
			return nil, "", err
		}
		redemptions = append(redemptions, &redemption)
	}

	if err := cursor.Err(); err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if int64(len(redemptions)) == limit {
		nextCursor = redemptions[len(redemptions)-1].ID.Hex()
	}

	return redemptions, nextCursor, nil
}
