package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// RepetitionUnit is reference data describing what a set's "reps" counts,
// e.g. "Repetitions", "Seconds", "Until Failure". Seeded at startup; the
// unit with the lowest Seq is the system default for new sets.
type RepetitionUnit struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
	Seq  int                `bson:"seq" json:"-"` // Seeding order; lowest is the default
}

// WeightUnit is reference data for a set's weight, e.g. "kg", "lb".
type WeightUnit struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
	Seq  int                `bson:"seq" json:"-"`
}
