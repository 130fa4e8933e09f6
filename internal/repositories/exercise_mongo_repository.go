package repositories

import (
	"context"
	"fmt"
	"time"

	"exercisetracker/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ExercisesCollection is the MongoDB collection holding exercises.
const ExercisesCollection = "exercises"

type exerciseDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Description string             `bson:"description"`
	Duration    int                `bson:"duration"`
	Date        time.Time          `bson:"date"`
}

func (d exerciseDocument) toModel() models.Exercise {
	return models.Exercise{
		ID:          d.ID.Hex(),
		UserID:      d.UserID,
		Description: d.Description,
		Duration:    d.Duration,
		Date:        d.Date.UTC(),
		CreatedAt:   d.ID.Timestamp().UTC(),
	}
}

// MongoExerciseRepository is a MongoDB implementation of ExerciseRepository.
type MongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new instance of MongoExerciseRepository.
func NewMongoExerciseRepository(db *mongo.Database) *MongoExerciseRepository {
	return &MongoExerciseRepository{
		collection: db.Collection(ExercisesCollection),
	}
}

// Create inserts a new exercise document and sets exercise.ID.
func (r *MongoExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	doc := exerciseDocument{
		ID:          primitive.NewObjectID(),
		UserID:      exercise.UserID,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date.UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create exercise: %w", err)
	}
	*exercise = doc.toModel()
	return nil
}

// Find retrieves the exercises of one user in natural order.
func (r *MongoExerciseRepository) Find(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error) {
	cursor, err := r.collection.Find(ctx, exerciseQuery(filter), exerciseFindOptions(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to find exercises for user %s: %w", filter.UserID, err)
	}

	var docs []exerciseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode exercises: %w", err)
	}

	exercises := make([]models.Exercise, 0, len(docs))
	for _, d := range docs {
		exercises = append(exercises, d.toModel())
	}
	return exercises, nil
}

func exerciseQuery(filter models.ExerciseFilter) bson.M {
	query := bson.M{"user_id": filter.UserID}
	dateRange := bson.M{}
	if filter.From != nil {
		dateRange["$gte"] = filter.From.UTC()
	}
	if filter.To != nil {
		dateRange["$lte"] = filter.To.UTC()
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}
	return query
}

func exerciseFindOptions(filter models.ExerciseFilter) *options.FindOptions {
	opts := options.Find()
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	return opts
}
