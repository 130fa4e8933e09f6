package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Event types published by the services.
const (
	EventUserCreated    = "user.created"
	EventExerciseLogged = "exercise.logged"
)

// EventPublisher publishes domain events. Services treat a nil publisher as
// "events disabled".
type EventPublisher interface {
	PublishEvent(ctx context.Context, eventType string, payload any) error
}

// UserCreatedEvent is published after a user is stored.
type UserCreatedEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ExerciseLoggedEvent is published after an exercise is stored.
type ExerciseLoggedEvent struct {
	Type        string    `json:"type"`
	UserID      string    `json:"user_id"`
	ExerciseID  string    `json:"exercise_id"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Date        time.Time `json:"date"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// publish sends an event when a publisher is configured. Failures are logged
// and never fail the calling operation.
func publish(ctx context.Context, publisher EventPublisher, log *zap.Logger, eventType string, payload any) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishEvent(ctx, eventType, payload); err != nil {
		log.Warn("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}
