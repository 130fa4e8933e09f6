package repositories

import (
	"context"
	"sync"
	"time"

	"exercisetracker/internal/models"

	"github.com/google/uuid"
)

// MemoryExerciseRepository is an in-memory implementation of
// ExerciseRepository. Exercises are returned in insertion order.
type MemoryExerciseRepository struct {
	exercises []models.Exercise
	mu        sync.RWMutex
}

// NewMemoryExerciseRepository creates a new instance of MemoryExerciseRepository.
func NewMemoryExerciseRepository() *MemoryExerciseRepository {
	return &MemoryExerciseRepository{}
}

// Create adds a new exercise.
func (r *MemoryExerciseRepository) Create(_ context.Context, exercise *models.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if exercise.ID == "" {
		exercise.ID = uuid.New().String()
	}
	exercise.Date = exercise.Date.UTC()
	exercise.CreatedAt = time.Now().UTC()
	r.exercises = append(r.exercises, *exercise)
	return nil
}

// Find returns the exercises matching filter.
func (r *MemoryExerciseRepository) Find(_ context.Context, filter models.ExerciseFilter) ([]models.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Exercise, 0)
	for _, e := range r.exercises {
		if filter.Limit > 0 && len(matched) == filter.Limit {
			break
		}
		if e.UserID != filter.UserID {
			continue
		}
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Date.After(*filter.To) {
			continue
		}
		matched = append(matched, e)
	}
	return matched, nil
}
