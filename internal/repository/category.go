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

// CategoryRepository defines the offer category document operations.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	UpdateCategory(ctx context.Context, id string, params UpdateCategoryParams) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) (*model.Category, error)
	ReorderCategories(ctx context.Context, orderedIDs []string) error
}

// UpdateCategoryParams defines the optional parameters for updating a
// category. Only the fields that are not nil will be updated.
type UpdateCategoryParams struct {
	NameEnglish   *string
	NameArabic    *string
	ImageURL      *string
	Subcategories *[]model.SubCategory
	IsActive      *bool
}

const categoryCollection = "categories"

type categoryMongoRepository struct {
	db *mongo.Database
}

func NewCategoryMongoRepository(db *mongo.Database) CategoryRepository {
	return &categoryMongoRepository{db: db}
}

func (r *categoryMongoRepository) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	// New categories go to the end of the sorted list.
	count, err := r.db.Collection(categoryCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	category.Order = int(count)

	result, err := r.db.Collection(categoryCollection).InsertOne(ctx, category)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		category.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return category, nil
}

func (r *categoryMongoRepository) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(categoryCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var category model.Category
	if err := result.Decode(&category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *categoryMongoRepository) ListCategories(ctx context.Context) ([]*model.Category, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.db.Collection(categoryCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []*model.Category
	for cursor.Next(ctx) {
		var category model.Category
		if err := cursor.Decode(&category); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryMongoRepository) UpdateCategory(
	ctx context.Context,
	id string,
	params UpdateCategoryParams,
) (*model.Category, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.NameEnglish != nil {
		updateMap["name_english"] = *params.NameEnglish
	}
	if params.NameArabic != nil {
		updateMap["name_arabic"] = *params.NameArabic
	}
	if params.ImageURL != nil {
		updateMap["image_url"] = *params.ImageURL
	}
	if params.Subcategories != nil {
		updateMap["subcategories"] = *params.Subcategories
	}
	if params.IsActive != nil {
		updateMap["is_active"] = *params.IsActive
	}

	if len(updateMap) == 0 {
		return r.GetCategory(ctx, id)
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(categoryCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var category model.Category
	if err := result.Decode(&category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *categoryMongoRepository) DeleteCategory(ctx context.Context, id string) (*model.Category, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(categoryCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var category model.Category
	if err := result.Decode(&category); err != nil {
		return nil, err
	}

	return &category, nil
}

// ReorderCategories rewrites the order field of every listed category to its
// position in orderedIDs.
func (r *categoryMongoRepository) ReorderCategories(ctx context.Context, orderedIDs []string) error {
	now := time.Now()

	writes := make([]mongo.WriteModel, 0, len(orderedIDs))
	for position, id := range orderedIDs {
		objectID, err := bson.ObjectIDFromHex(id)
		if err != nil {
			return err
		}

		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": objectID}).
			SetUpdate(bson.M{"$set": bson.M{"order": position, "updated_at": now}}))
	}

	if len(writes) == 0 {
		return nil
	}

	_, err := r.db.Collection(categoryCollection).BulkWrite(ctx, writes)

	return err
}
