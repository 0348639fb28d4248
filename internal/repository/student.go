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

// StudentRepository defines the student profile document operations.
type StudentRepository interface {
	CreateStudent(ctx context.Context, student *model.Student) (*model.Student, error)
	GetStudent(ctx context.Context, id string) (*model.Student, error)
	ListStudents(ctx context.Context, params ListParams) ([]*model.Student, string, error)
	UpdateStudent(ctx context.Context, id string, params UpdateStudentParams) (*model.Student, error)
}

// UpdateStudentParams defines the optional parameters for updating a student.
// Only the fields that are not nil will be updated.
type UpdateStudentParams struct {
	Name       *string
	University *string
	Status     *string
}

const studentCollection = "students"

type studentMongoRepository struct {
	db *mongo.Database
}

func NewStudentMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) StudentRepository {
	collection := db.Collection(studentCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create student indexes")
	}

	return &studentMongoRepository{db: db}
}

func (r *studentMongoRepository) CreateStudent(ctx context.Context, student *model.Student) (*model.Student, error) {
	now := time.Now()
	student.CreatedAt = now
	student.UpdatedAt = now

	if student.Status == "" {
		student.Status = model.StudentStatusActive
	}

	if _, err := r.db.Collection(studentCollection).InsertOne(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

func (r *studentMongoRepository) GetStudent(ctx context.Context, id string) (*model.Student, error) {
	result := r.db.Collection(studentCollection).FindOne(ctx, bson.M{"_id": id})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var student model.Student
	if err := result.Decode(&student); err != nil {
		return nil, err
	}

	return &student, nil
}

func (r *studentMongoRepository) ListStudents(
	ctx context.Context,
	params ListParams,
) ([]*model.Student, string, error) {
	limit := params.limit()

	filter := bson.M{}
	if params.Cursor != "" {
		filter["_id"] = bson.M{"$gt": params.Cursor}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.db.Collection(studentCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, "", err
	}
	defer cursor.Close(ctx)

	var students []*model.Student
	for cursor.Next(ctx) {
		var student model.Student
		if err := cursor.Decode(&student); err != nil {
			return nil, "", err
		}
		students = append(students, &student)
	}

	if err := cursor.Err(); err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if int64(len(students)) == limit {
		nextCursor = students[len(students)-1].ID
	}

	return students, nextCursor, nil
}

func (r *studentMongoRepository) UpdateStudent(
	ctx context.Context,
	id string,
	params UpdateStudentParams,
) (*model.Student, error) {
	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.University != nil {
		updateMap["university"] = *params.University
	}
	if params.Status != nil {
		updateMap["status"] = *params.Status
	}

	if len(updateMap) == 0 {
		return r.GetStudent(ctx, id)
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(studentCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var student model.Student
	if err := result.Decode(&student); err != nil {
		return nil, err
	}

	return &student, nil
}
