// internal/domain/session.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutSession is a concrete, timestamped occurrence of training,
// optionally instantiated from a RoutineDay template. EndTime unset means the
// session is still active; set means it is completed.
type WorkoutSession struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID  `bson:"userId" json:"userId"`
	Name       string              `bson:"name" json:"name"`
	Notes      string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Impression *int                `bson:"impression,omitempty" json:"impression,omitempty"` // 1 (bad) .. 5 (great)
	StartTime  time.Time           `bson:"startTime" json:"startTime"`
	EndTime    *time.Time          `bson:"endTime,omitempty" json:"endTime,omitempty"`
	TemplateID *primitive.ObjectID `bson:"templateId,omitempty" json:"templateId,omitempty"` // RoutineDay this was cloned from
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Completed reports whether the session has been finished.
func (s *WorkoutSession) Completed() bool {
	return s.EndTime != nil
}
