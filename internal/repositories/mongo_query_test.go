package repositories

import (
	"context"
	"testing"
	"time"

	"exercisetracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestExerciseQuery(t *testing.T) {
	from := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, bson.M{"user_id": "u1"}, exerciseQuery(models.ExerciseFilter{UserID: "u1"}))

	assert.Equal(t,
		bson.M{"user_id": "u1", "date": bson.M{"$gte": from}},
		exerciseQuery(models.ExerciseFilter{UserID: "u1", From: &from}))

	assert.Equal(t,
		bson.M{"user_id": "u1", "date": bson.M{"$gte": from, "$lte": to}},
		exerciseQuery(models.ExerciseFilter{UserID: "u1", From: &from, To: &to}))
}

func TestExerciseFindOptions(t *testing.T) {
	opts := exerciseFindOptions(models.ExerciseFilter{Limit: 25})
	if assert.NotNil(t, opts.Limit) {
		assert.Equal(t, int64(25), *opts.Limit)
	}
	assert.Nil(t, exerciseFindOptions(models.ExerciseFilter{}).Limit)
}

func TestUserDocumentToModel(t *testing.T) {
	doc := userDocument{Username: "alice"}
	doc.ID = [12]byte{0x65, 0x00, 0x00, 0x00, 1, 2, 3, 4, 5, 6, 7, 8}
	user := doc.toModel()
	assert.Equal(t, "650000000102030405060708", user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestMongoUserRepository_GetByIDMalformedID(t *testing.T) {
	// Connect does not dial; a malformed id never reaches the server.
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://localhost:27017").
		SetServerSelectionTimeout(100*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	repo := NewMongoUserRepository(client.Database("exercisetracker_test"))
	for _, id := range []string{"nobody", "", "65000000010203040506070", "zz0000000102030405060708"} {
		user, err := repo.GetByID(context.Background(), id)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrUserNotFound, "id %q", id)
	}
}
