package service

import (
	"context"
	"fmt"
	"time"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"
	"liftlog/workout-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseWithImage is an exercise enriched with a short-lived presigned URL
// for its illustration. The enrichment is decorative read-side work; the
// mutation engine itself never touches it.
type ExerciseWithImage struct {
	domain.Exercise
	ImageURL string `json:"imageUrl,omitempty"`
}

// ImageUploadTicket is what a client needs to attach an image to an
// exercise: a presigned PUT URL plus the content type it must send.
type ImageUploadTicket struct {
	UploadURL   string `json:"uploadUrl"`
	ContentType string `json:"contentType"`
}

// --- Service Interface ---
type ExerciseService interface {
	GetExercises(ctx context.Context) ([]ExerciseWithImage, error)
	GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*ExerciseWithImage, error)
	RequestImageUpload(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (*ImageUploadTicket, error)
}

// --- Service Implementation ---

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
	}
}

// withImageURL resolves the stored image key to a presigned download URL.
// Resolution failures degrade to an exercise without an image rather than
// failing the read.
func (s *exerciseService) withImageURL(ctx context.Context, exercise domain.Exercise) ExerciseWithImage {
	enriched := ExerciseWithImage{Exercise: exercise}
	if exercise.ImageKey == "" || s.fileStorage == nil {
		return enriched
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.ImageKey, storage.DefaultPresignedURLExpiry)
	if err == nil {
		enriched.ImageURL = url
	}
	return enriched
}

// GetExercises lists the exercise library with image URLs resolved.
func (s *exerciseService) GetExercises(ctx context.Context) ([]ExerciseWithImage, error) {
	exercises, err := s.exerciseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	enriched := make([]ExerciseWithImage, 0, len(exercises))
	for _, exercise := range exercises {
		enriched = append(enriched, s.withImageURL(ctx, exercise))
	}
	return enriched, nil
}

// GetExerciseByID retrieves a single exercise with its image URL resolved.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*ExerciseWithImage, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		return nil, orNotFound(err, ErrExerciseNotFound)
	}
	enriched := s.withImageURL(ctx, *exercise)
	return &enriched, nil
}

// RequestImageUpload issues a presigned PUT URL for an exercise image and
// records the object key on the exercise row.
func (s *exerciseService) RequestImageUpload(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (*ImageUploadTicket, error) {
	if contentType == "" {
		return nil, fmt.Errorf("content type is required: %w", ErrValidationFailed)
	}
	if s.fileStorage == nil {
		return nil, fmt.Errorf("file storage is not configured: %w", ErrPreconditionFailed)
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		return nil, orNotFound(err, ErrExerciseNotFound)
	}

	objectKey := fmt.Sprintf("exercises/%s/%s", exercise.ID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, 15*time.Minute)
	if err != nil {
		return nil, err
	}
	if err := s.exerciseRepo.SetImageKey(ctx, exercise.ID, objectKey); err != nil {
		return nil, orNotFound(err, ErrExerciseNotFound)
	}
	return &ImageUploadTicket{UploadURL: uploadURL, ContentType: contentType}, nil
}
