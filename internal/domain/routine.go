// internal/domain/routine.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Routine is the top-level training plan a user builds for themselves.
// Deleting a routine cascades to all of its days (and through them to the
// set groups and sets of each day).
type Routine struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"` // e.g., "Push/Pull/Legs"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RoutineDay is a scheduling template within a routine: "Day 1: Upper Body",
// planned for one or more weekdays. It is a blueprint, never itself
// "completed"; instantiating it produces a WorkoutSession.
type RoutineDay struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoutineID   primitive.ObjectID `bson:"routineId" json:"routineId"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"` // Denormalized for ownership checks
	Description string             `bson:"description" json:"description"`
	Weekdays    []int              `bson:"weekdays" json:"weekdays"` // 0 (Sunday) .. 6 (Saturday)
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
