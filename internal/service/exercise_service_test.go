package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStorage records presign calls and returns deterministic URLs.
type fakeStorage struct {
	failDownload bool
	lastKey      string
}

func (f *fakeStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error) {
	f.lastKey = objectKey
	return "https://storage.test/upload/" + objectKey, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	if f.failDownload {
		return "", errors.New("storage unavailable")
	}
	return "https://storage.test/get/" + objectKey, nil
}

func (f *fakeStorage) DeleteObject(ctx context.Context, objectKey string) error { return nil }

func TestExerciseList_ResolvesImageURLs(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	store.AddExercise(domain.Exercise{Name: "Deadlift", ImageKey: "exercises/abc/img"})
	store.AddExercise(domain.Exercise{Name: "Squat"})

	svc := NewExerciseService(store.Exercises(), &fakeStorage{})
	exercises, err := svc.GetExercises(ctx)
	require.NoError(t, err)
	require.Len(t, exercises, 2)

	byName := map[string]ExerciseWithImage{}
	for _, e := range exercises {
		byName[e.Name] = e
	}
	assert.Equal(t, "https://storage.test/get/exercises/abc/img", byName["Deadlift"].ImageURL)
	assert.Empty(t, byName["Squat"].ImageURL)
}

func TestExerciseGet_StorageFailureDegradesGracefully(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	exercise := store.AddExercise(domain.Exercise{Name: "Deadlift", ImageKey: "exercises/abc/img"})

	svc := NewExerciseService(store.Exercises(), &fakeStorage{failDownload: true})
	got, err := svc.GetExerciseByID(ctx, exercise.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deadlift", got.Name)
	assert.Empty(t, got.ImageURL)
}

func TestExerciseRequestImageUpload(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	exercise := store.AddExercise(domain.Exercise{Name: "Deadlift"})
	fs := &fakeStorage{}

	svc := NewExerciseService(store.Exercises(), fs)
	ticket, err := svc.RequestImageUpload(ctx, exercise.ID, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", ticket.ContentType)
	assert.True(t, strings.HasPrefix(fs.lastKey, "exercises/"+exercise.ID.Hex()+"/"))

	// The generated key is persisted on the exercise row.
	stored, err := store.Exercises().GetByID(ctx, exercise.ID)
	require.NoError(t, err)
	assert.Equal(t, fs.lastKey, stored.ImageKey)
}

func TestExerciseRequestImageUpload_Validation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	exercise := store.AddExercise(domain.Exercise{Name: "Deadlift"})

	svc := NewExerciseService(store.Exercises(), &fakeStorage{})
	_, err := svc.RequestImageUpload(ctx, exercise.ID, "")
	require.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.RequestImageUpload(ctx, primitive.NewObjectID(), "image/png")
	require.ErrorIs(t, err, ErrExerciseNotFound)
}
