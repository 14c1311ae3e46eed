// internal/domain/set.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetType marks the role of a set within its group.
type SetType string

const (
	SetNormal  SetType = "NORMAL"
	SetWarmup  SetType = "WARMUP"
	SetDropset SetType = "DROPSET"
	SetFailure SetType = "FAILURE"
)

// Set is the leaf of the workout hierarchy: one exercise performance (or the
// plan for one) inside a set group. A group never exists with zero sets;
// deleting the last set deletes the group.
type Set struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	SetGroupID       primitive.ObjectID `bson:"setGroupId" json:"setGroupId"`
	ExerciseID       primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Type             SetType            `bson:"type" json:"type"`
	Order            int                `bson:"order" json:"order"`
	Reps             int                `bson:"reps" json:"reps"`
	RepetitionUnitID primitive.ObjectID `bson:"repetitionUnitId" json:"repetitionUnitId"`
	Weight           float64            `bson:"weight" json:"weight"`
	WeightUnitID     primitive.ObjectID `bson:"weightUnitId" json:"weightUnitId"`
	RestTime         int                `bson:"restTime" json:"restTime"` // Seconds
	Completed        bool               `bson:"completed" json:"completed"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
