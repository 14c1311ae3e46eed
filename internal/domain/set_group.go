// internal/domain/set_group.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetGroupType distinguishes a plain exercise block from a superset.
type SetGroupType string

const (
	SetGroupNormal   SetGroupType = "NORMAL"
	SetGroupSuperset SetGroupType = "SUPERSET"
)

// ParentKind says which side of the template/instance mirror a set group
// hangs off.
type ParentKind string

const (
	ParentTemplate ParentKind = "template" // parent is a RoutineDay
	ParentSession  ParentKind = "session"  // parent is a WorkoutSession
)

// SetGroupParent is a tagged reference to the owning aggregate. A set group
// belongs to either a routine day (template) or a workout session (instance),
// never both; carrying kind+id in one value makes that impossible to violate,
// instead of two nullable foreign keys that every call site would have to
// cross-check.
type SetGroupParent struct {
	Kind ParentKind         `bson:"kind" json:"kind"`
	ID   primitive.ObjectID `bson:"id" json:"id"`
}

// TemplateParent builds a parent reference to a routine day.
func TemplateParent(dayID primitive.ObjectID) SetGroupParent {
	return SetGroupParent{Kind: ParentTemplate, ID: dayID}
}

// SessionParent builds a parent reference to a workout session.
func SessionParent(sessionID primitive.ObjectID) SetGroupParent {
	return SetGroupParent{Kind: ParentSession, ID: sessionID}
}

// SetGroup is an ordered cluster of sets sharing one exercise-grouping
// semantic within a routine day or a session. Order is an integer position
// among siblings of the same parent; siblings are always read sorted by it.
type SetGroup struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Parent    SetGroupParent     `bson:"parent" json:"parent"`
	Type      SetGroupType       `bson:"type" json:"type"`
	Order     int                `bson:"order" json:"order"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
