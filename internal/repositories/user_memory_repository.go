package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"exercisetracker/internal/models"

	"github.com/google/uuid"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
// Users are returned in insertion order.
type MemoryUserRepository struct {
	users []models.User
	index map[string]int
	mu    sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		index: make(map[string]int),
	}
}

// Create adds a new user.
func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if _, exists := r.index[user.ID]; exists {
		return fmt.Errorf("failed to create user: duplicate ID %s", user.ID)
	}
	user.CreatedAt = time.Now().UTC()
	r.index[user.ID] = len(r.users)
	r.users = append(r.users, *user)
	return nil
}

// GetAll returns all users.
func (r *MemoryUserRepository) GetAll(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userList := make([]models.User, len(r.users))
	copy(userList, r.users)
	return userList, nil
}

// GetByID returns a user by its ID.
func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrUserNotFound)
	}
	user := r.users[i]
	return &user, nil
}
