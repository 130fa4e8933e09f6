package repositories

import (
	"context"
	"fmt"

	"exercisetracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMExerciseRepository is a GORM implementation of ExerciseRepository.
type GORMExerciseRepository struct {
	db *gorm.DB
}

// NewGORMExerciseRepository creates a new instance of GORMExerciseRepository.
func NewGORMExerciseRepository(db *gorm.DB) *GORMExerciseRepository {
	return &GORMExerciseRepository{
		db: db,
	}
}

// Create creates a new exercise in the database.
func (r *GORMExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	if exercise.ID == "" {
		exercise.ID = uuid.New().String()
	}
	exercise.Date = exercise.Date.UTC()
	if err := r.db.WithContext(ctx).Create(exercise).Error; err != nil {
		return fmt.Errorf("failed to create exercise: %w", err)
	}
	return nil
}

// Find retrieves the exercises of one user, optionally bounded by date.
func (r *GORMExerciseRepository) Find(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)
	if filter.From != nil {
		query = query.Where("date >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("date <= ?", filter.To.UTC())
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var exercises []models.Exercise
	if err := query.Find(&exercises).Error; err != nil {
		return nil, fmt.Errorf("failed to find exercises for user %s: %w", filter.UserID, err)
	}
	return exercises, nil
}
