package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"exercisetracker/internal/models"
	"exercisetracker/internal/repositories"

	"go.uber.org/zap"
)

// MaxLogLimit caps the number of entries returned by a single log query.
const MaxLogLimit = 500

// ErrUserNotFound is returned when an operation references an unknown user.
var ErrUserNotFound = repositories.ErrUserNotFound

// LogExerciseInput carries an exercise to be logged. A nil Date means now.
type LogExerciseInput struct {
	Description string
	Duration    int
	Date        *time.Time
}

// LogQuery narrows a log retrieval. Limit values outside 1..MaxLogLimit are
// replaced by MaxLogLimit.
type LogQuery struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// ExerciseLog is one user's filtered exercise log.
type ExerciseLog struct {
	User      models.User
	Exercises []models.Exercise
}

// Count is the number of entries in the returned page.
func (l ExerciseLog) Count() int {
	return len(l.Exercises)
}

// ExerciseService handles business logic related to exercises.
type ExerciseService struct {
	users     repositories.UserRepository
	exercises repositories.ExerciseRepository
	publisher EventPublisher
	log       *zap.Logger
	now       func() time.Time
}

// ExerciseServiceOption configures an ExerciseService.
type ExerciseServiceOption func(*ExerciseService)

// WithClock overrides the time source used for default exercise dates.
func WithClock(now func() time.Time) ExerciseServiceOption {
	return func(s *ExerciseService) {
		s.now = now
	}
}

// NewExerciseService creates a new ExerciseService. publisher may be nil.
func NewExerciseService(users repositories.UserRepository, exercises repositories.ExerciseRepository, publisher EventPublisher, log *zap.Logger, opts ...ExerciseServiceOption) *ExerciseService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &ExerciseService{
		users:     users,
		exercises: exercises,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetUser returns the user an exercise operation refers to.
func (s *ExerciseService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// LogExercise stores an exercise for an existing user and returns both.
func (s *ExerciseService) LogExercise(ctx context.Context, userID string, input LogExerciseInput) (*models.User, *models.Exercise, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	exercise, err := s.LogExerciseFor(ctx, user, input)
	if err != nil {
		return nil, nil, err
	}
	return user, exercise, nil
}

// LogExerciseFor stores an exercise for a user already returned by GetUser.
func (s *ExerciseService) LogExerciseFor(ctx context.Context, user *models.User, input LogExerciseInput) (*models.Exercise, error) {
	date := s.now()
	if input.Date != nil {
		date = *input.Date
	}

	exercise := &models.Exercise{
		UserID:      user.ID,
		Description: input.Description,
		Duration:    input.Duration,
		Date:        date.UTC(),
	}
	if err := s.exercises.Create(ctx, exercise); err != nil {
		return nil, fmt.Errorf("log exercise for user %s: %w", user.ID, err)
	}

	publish(ctx, s.publisher, s.log, EventExerciseLogged, ExerciseLoggedEvent{
		Type:        EventExerciseLogged,
		UserID:      user.ID,
		ExerciseID:  exercise.ID,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
		OccurredAt:  s.now().UTC(),
	})
	return exercise, nil
}

// GetLog returns the exercises of an existing user, filtered by query.
func (s *ExerciseService) GetLog(ctx context.Context, userID string, query LogQuery) (*ExerciseLog, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.GetLogFor(ctx, user, query)
}

// GetLogFor returns the filtered exercises of a user already returned by
// GetUser.
func (s *ExerciseService) GetLogFor(ctx context.Context, user *models.User, query LogQuery) (*ExerciseLog, error) {
	exercises, err := s.exercises.Find(ctx, models.ExerciseFilter{
		UserID: user.ID,
		From:   query.From,
		To:     query.To,
		Limit:  NormalizeLimit(query.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("get log for user %s: %w", user.ID, err)
	}
	if exercises == nil {
		exercises = []models.Exercise{}
	}
	return &ExerciseLog{User: *user, Exercises: exercises}, nil
}

// NormalizeLimit maps a requested page size onto 1..MaxLogLimit.
func NormalizeLimit(limit int) int {
	if limit <= 0 || limit > MaxLogLimit {
		return MaxLogLimit
	}
	return limit
}

// IsUserNotFound reports whether err means the referenced user does not exist.
func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}
