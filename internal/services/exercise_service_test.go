package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"exercisetracker/internal/models"
	"exercisetracker/internal/repositories"
	"exercisetracker/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func newExerciseService(users *MockUserRepository, exercises *MockExerciseRepository, mq services.EventPublisher) *services.ExerciseService {
	return services.NewExerciseService(users, exercises, mq, zap.NewNop(),
		services.WithClock(func() time.Time { return fixedNow }))
}

func TestExerciseService_LogExerciseDefaultsDateToNow(t *testing.T) {
	users := new(MockUserRepository)
	exercises := new(MockExerciseRepository)
	service := newExerciseService(users, exercises, nil)
	ctx := context.Background()

	users.On("GetByID", ctx, "user-1").Return(&models.User{ID: "user-1", Username: "alice"}, nil).Once()
	exercises.On("Create", ctx, mock.MatchedBy(func(e *models.Exercise) bool {
		return e.UserID == "user-1" && e.Description == "run" && e.Duration == 30 && e.Date.Equal(fixedNow)
	})).Return(nil).Once()

	user, exercise, err := service.LogExercise(ctx, "user-1", services.LogExerciseInput{Description: "run", Duration: 30})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Fri Mar 15 2024", exercise.FormattedDate())
	users.AssertExpectations(t)
	exercises.AssertExpectations(t)
}

func TestExerciseService_LogExerciseWithDate(t *testing.T) {
	users := new(MockUserRepository)
	exercises := new(MockExerciseRepository)
	mq := new(MockPublisher)
	service := newExerciseService(users, exercises, mq)
	ctx := context.Background()

	date := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	users.On("GetByID", ctx, "user-1").Return(&models.User{ID: "user-1", Username: "alice"}, nil).Once()
	exercises.On("Create", ctx, mock.AnythingOfType("*models.Exercise")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Exercise).ID = "ex-1"
		}).
		Return(nil).Once()
	mq.On("PublishEvent", ctx, services.EventExerciseLogged, mock.MatchedBy(func(e services.ExerciseLoggedEvent) bool {
		return e.ExerciseID == "ex-1" && e.UserID == "user-1" && e.Date.Equal(date) && e.OccurredAt.Equal(fixedNow)
	})).Return(nil).Once()

	_, exercise, err := service.LogExercise(ctx, "user-1", services.LogExerciseInput{Description: "swim", Duration: 45, Date: &date})
	require.NoError(t, err)
	assert.Equal(t, "Thu Jun 01 2023", exercise.FormattedDate())
	mq.AssertExpectations(t)
}

func TestExerciseService_LogExerciseUnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	exercises := new(MockExerciseRepository)
	service := newExerciseService(users, exercises, nil)
	ctx := context.Background()

	users.On("GetByID", ctx, "missing").Return(nil, fmt.Errorf("user with ID missing: %w", repositories.ErrUserNotFound)).Once()

	_, _, err := service.LogExercise(ctx, "missing", services.LogExerciseInput{Description: "run", Duration: 30})
	assert.True(t, services.IsUserNotFound(err))
	exercises.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExerciseService_LogExerciseStoreFailure(t *testing.T) {
	users := new(MockUserRepository)
	exercises := new(MockExerciseRepository)
	service := newExerciseService(users, exercises, nil)
	ctx := context.Background()

	users.On("GetByID", ctx, "user-1").Return(&models.User{ID: "user-1", Username: "alice"}, nil).Once()
	exercises.On("Create", ctx, mock.Anything).Return(fmt.Errorf("write conflict")).Once()

	_, _, err := service.LogExercise(ctx, "user-1", services.LogExerciseInput{Description: "run", Duration: 30})
	assert.Error(t, err)
	assert.False(t, services.IsUserNotFound(err))
	assert.Contains(t, err.Error(), "write conflict")
}

func TestExerciseService_GetLog(t *testing.T) {
	users := new(MockUserRepository)
	exercises := new(MockExerciseRepository)
	service := newExerciseService(users, exercises, nil)
	ctx := context.Background()

	from := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	stored := []models.Exercise{{ID: "ex-2", UserID: "user-1", Description: "swim", Duration: 45, Date: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)}}

	users.On("GetByID", ctx, "user-1").Return(&models.User{ID: "user-1", Username: "alice"}, nil).Once()
	exercises.On("Find", ctx, models.ExerciseFilter{UserID: "user-1", From: &from, To: &to, Limit: 10}).Return(stored, nil).Once()

	log, err := service.GetLog(ctx, "user-1", services.LogQuery{From: &from, To: &to, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "alice", log.User.Username)
	assert.Equal(t, 1, log.Count())
	assert.Equal(t, stored, log.Exercises)
	exercises.AssertExpectations(t)
}

func TestExerciseService_GetLogEmpty(t *testing.T) {
	users := new(MockUserRepository)
	exercises := new(MockExerciseRepository)
	service := newExerciseService(users, exercises, nil)
	ctx := context.Background()

	users.On("GetByID", ctx, "user-1").Return(&models.User{ID: "user-1", Username: "alice"}, nil).Once()
	exercises.On("Find", ctx, models.ExerciseFilter{UserID: "user-1", Limit: services.MaxLogLimit}).Return(nil, nil).Once()

	log, err := service.GetLog(ctx, "user-1", services.LogQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, log.Count())
	assert.NotNil(t, log.Exercises)
}

func TestExerciseService_GetLogErrors(t *testing.T) {
	users := new(MockUserRepository)
	exercises := new(MockExerciseRepository)
	service := newExerciseService(users, exercises, nil)
	ctx := context.Background()

	users.On("GetByID", ctx, "missing").Return(nil, repositories.ErrUserNotFound).Once()
	_, err := service.GetLog(ctx, "missing", services.LogQuery{})
	assert.True(t, services.IsUserNotFound(err))

	users.On("GetByID", ctx, "user-1").Return(&models.User{ID: "user-1", Username: "alice"}, nil).Once()
	exercises.On("Find", ctx, mock.Anything).Return(nil, fmt.Errorf("timeout")).Once()
	_, err = service.GetLog(ctx, "user-1", services.LogQuery{})
	assert.Error(t, err)
	assert.False(t, services.IsUserNotFound(err))
}

func TestNormalizeLimit(t *testing.T) {
	cases := map[int]int{
		-5:   services.MaxLogLimit,
		0:    services.MaxLogLimit,
		1:    1,
		250:  250,
		500:  500,
		501:  services.MaxLogLimit,
		9999: services.MaxLogLimit,
	}
	for in, want := range cases {
		assert.Equal(t, want, services.NormalizeLimit(in), "limit %d", in)
	}
}

func TestExerciseService_ForResolvedUser(t *testing.T) {
	users := new(MockUserRepository)
	exercises := new(MockExerciseRepository)
	service := newExerciseService(users, exercises, nil)
	ctx := context.Background()

	users.On("GetByID", ctx, "user-1").Return(&models.User{ID: "user-1", Username: "alice"}, nil).Once()
	user, err := service.GetUser(ctx, "user-1")
	require.NoError(t, err)

	exercises.On("Create", ctx, mock.MatchedBy(func(e *models.Exercise) bool {
		return e.UserID == "user-1" && e.Description == "row"
	})).Return(nil).Once()
	exercise, err := service.LogExerciseFor(ctx, user, services.LogExerciseInput{Description: "row", Duration: 20})
	require.NoError(t, err)
	assert.Equal(t, "Fri Mar 15 2024", exercise.FormattedDate())

	exercises.On("Find", ctx, models.ExerciseFilter{UserID: "user-1", Limit: 2}).Return([]models.Exercise{*exercise}, nil).Once()
	log, err := service.GetLogFor(ctx, user, services.LogQuery{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, log.Count())
	assert.Equal(t, "alice", log.User.Username)

	// the user is looked up once; the *For methods do not repeat it
	users.AssertNumberOfCalls(t, "GetByID", 1)
	exercises.AssertExpectations(t)
}

func TestExerciseService_GetUserNotFound(t *testing.T) {
	users := new(MockUserRepository)
	service := newExerciseService(users, new(MockExerciseRepository), nil)
	ctx := context.Background()

	users.On("GetByID", ctx, "missing").Return(nil, fmt.Errorf("user with ID missing: %w", repositories.ErrUserNotFound)).Once()
	_, err := service.GetUser(ctx, "missing")
	assert.True(t, services.IsUserNotFound(err))
}
