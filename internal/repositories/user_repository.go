package repositories

import (
	"context"
	"errors"

	"exercisetracker/internal/models"
)

// ErrUserNotFound is returned when no user matches the requested ID.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
