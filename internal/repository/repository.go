package repository

import (
	"context"

	"liftlog/workout-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TxManager runs a function inside a single store transaction. Every mutation
// of the engine goes through it: either all rows written by fn are committed
// or none are. The ctx passed to fn carries the transaction and must be used
// for every repository call inside it.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ExerciseRepository reads the shared exercise library. The engine treats it
// as reference data; only the image key is ever written, by the API's
// image-attach flow.
type ExerciseRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	SetImageKey(ctx context.Context, id primitive.ObjectID, key string) error
}

// UnitRepository serves the repetition/weight unit reference tables. The
// "first" unit (lowest seeding order) is the system default applied to new
// sets when the caller omits a unit.
type UnitRepository interface {
	CreateRepetitionUnit(ctx context.Context, unit *domain.RepetitionUnit) (primitive.ObjectID, error)
	CreateWeightUnit(ctx context.Context, unit *domain.WeightUnit) (primitive.ObjectID, error)
	FirstRepetitionUnit(ctx context.Context) (*domain.RepetitionUnit, error)
	FirstWeightUnit(ctx context.Context) (*domain.WeightUnit, error)
	ListRepetitionUnits(ctx context.Context) ([]domain.RepetitionUnit, error)
	ListWeightUnits(ctx context.Context) ([]domain.WeightUnit, error)
}

// RoutineRepository defines the interface for interacting with routines.
type RoutineRepository interface {
	Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Routine, error)
	Update(ctx context.Context, routine *domain.Routine) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// RoutineDayRepository defines the interface for interacting with routine
// day templates.
type RoutineDayRepository interface {
	Create(ctx context.Context, day *domain.RoutineDay) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RoutineDay, error)
	GetByRoutineID(ctx context.Context, routineID primitive.ObjectID) ([]domain.RoutineDay, error)
	Update(ctx context.Context, day *domain.RoutineDay) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SessionRepository defines the interface for interacting with workout
// sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error)
	Update(ctx context.Context, session *domain.WorkoutSession) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SetGroupRepository defines the interface for interacting with set groups.
// GetByParent returns siblings sorted ascending by order.
type SetGroupRepository interface {
	Create(ctx context.Context, group *domain.SetGroup) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.SetGroup, error)
	GetByParent(ctx context.Context, parent domain.SetGroupParent) ([]domain.SetGroup, error)
	Update(ctx context.Context, group *domain.SetGroup) error
	UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByParent(ctx context.Context, parent domain.SetGroupParent) error
}

// SetRepository defines the interface for interacting with sets.
// GetByGroupID returns siblings sorted ascending by order.
type SetRepository interface {
	Create(ctx context.Context, set *domain.Set) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Set, error)
	GetByGroupID(ctx context.Context, groupID primitive.ObjectID) ([]domain.Set, error)
	CountByGroupID(ctx context.Context, groupID primitive.ObjectID) (int64, error)
	Update(ctx context.Context, set *domain.Set) error
	UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByGroupID(ctx context.Context, groupID primitive.ObjectID) error
}
