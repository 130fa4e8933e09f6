package services

import (
	"context"
	"fmt"
	"time"

	"exercisetracker/internal/models"
	"exercisetracker/internal/repositories"

	"go.uber.org/zap"
)

// UserService handles business logic related to users.
type UserService struct {
	repo      repositories.UserRepository
	publisher EventPublisher
	log       *zap.Logger
}

// NewUserService creates a new UserService. publisher may be nil.
func NewUserService(repo repositories.UserRepository, publisher EventPublisher, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// CreateUser stores a new user. Usernames are not required to be unique.
func (s *UserService) CreateUser(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{Username: username}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}

	publish(ctx, s.publisher, s.log, EventUserCreated, UserCreatedEvent{
		Type:       EventUserCreated,
		UserID:     user.ID,
		Username:   user.Username,
		OccurredAt: time.Now().UTC(),
	})
	return user, nil
}

// ListUsers returns every user in store order.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
