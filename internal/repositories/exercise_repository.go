package repositories

import (
	"context"

	"exercisetracker/internal/models"
)

// ExerciseRepository defines the interface for exercise data access.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *models.Exercise) error
	// Find returns the exercises matching filter in store order, at most
	// filter.Limit of them when the limit is positive.
	Find(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error)
}
