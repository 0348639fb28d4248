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

// BannerRepository manages the single CMS banners document.
type BannerRepository interface {
	GetBannersConfig(ctx context.Context) (*model.BannersConfig, error)
	ReplaceBannersConfig(ctx context.Context, config *model.BannersConfig) (*model.BannersConfig, error)
}

const (
	cmsCollection   = "cms"
	bannersDocument = "banners"
)

type bannerMongoRepository struct {
	db *mongo.Database
}

func NewBannerMongoRepository(db *mongo.Database) BannerRepository {
	return &bannerMongoRepository{db: db}
}

type bannersDoc struct {
	ID          string             `bson:"_id"`
	LastUpdated time.Time          `bson:"last_updated"`
	Banners     []model.BannerItem `bson:"banners"`
}

func (r *bannerMongoRepository) GetBannersConfig(ctx context.Context) (*model.BannersConfig, error) {
	result := r.db.Collection(cmsCollection).FindOne(ctx, bson.M{"_id": bannersDocument})
	if result.Err() != nil {
		if errors.Is(result.Err(), mongo.ErrNoDocuments) {
			// No banners configured yet.
			return &model.BannersConfig{Banners: []model.BannerItem{}}, nil
		}

		return nil, result.Err()
	}

	var doc bannersDoc
	if err := result.Decode(&doc); err != nil {
		return nil, err
	}

	return &model.BannersConfig{
		LastUpdated: doc.LastUpdated,
		Banners:     doc.Banners,
	}, nil
}

func (r *bannerMongoRepository) ReplaceBannersConfig(
	ctx context.Context,
	config *model.BannersConfig,
) (*model.BannersConfig, error) {
	config.LastUpdated = time.Now()

	doc := bannersDoc{
		ID:          bannersDocument,
		LastUpdated: config.LastUpdated,
		Banners:     config.Banners,
	}

	_, err := r.db.Collection(cmsCollection).ReplaceOne(
		ctx,
		bson.M{"_id": bannersDocument},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}

	return config, nil
}
