// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a row of the shared exercise library. It is reference data:
// sets point at it by ID, the mutation engine never writes it.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	MuscleGroup string `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"` // e.g., "Chest", "Legs", "Back"
	Equipment   string `bson:"equipment,omitempty" json:"equipment,omitempty"`     // e.g., "Barbell", "Bodyweight"

	// ImageKey is the object-storage key of the exercise illustration, if one
	// has been attached. The API layer resolves it to a presigned URL; the key
	// itself is never returned to clients.
	ImageKey string `bson:"imageKey,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
