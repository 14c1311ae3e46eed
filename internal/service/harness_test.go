package service

import (
	"context"
	"testing"
	"time"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository/memory"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fixture wires every service against a fresh in-memory store with seeded
// units, two exercises, and two users.
type fixture struct {
	ctx   context.Context
	store *memory.Store

	userID  primitive.ObjectID
	otherID primitive.ObjectID

	squat domain.Exercise
	bench domain.Exercise

	repUnit    domain.RepetitionUnit
	weightUnit domain.WeightUnit

	routines RoutineService
	sessions SessionService
	groups   SetGroupService
	sets     SetService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	f := &fixture{ctx: ctx, store: store}

	f.squat = store.AddExercise(domain.Exercise{Name: "Squat", MuscleGroup: "Legs"})
	f.bench = store.AddExercise(domain.Exercise{Name: "Bench Press", MuscleGroup: "Chest"})

	units := store.Units()
	repUnit := &domain.RepetitionUnit{Name: "Repetitions", Seq: 1}
	_, err := units.CreateRepetitionUnit(ctx, repUnit)
	require.NoError(t, err)
	_, err = units.CreateRepetitionUnit(ctx, &domain.RepetitionUnit{Name: "Seconds", Seq: 2})
	require.NoError(t, err)
	weightUnit := &domain.WeightUnit{Name: "kg", Seq: 1}
	_, err = units.CreateWeightUnit(ctx, weightUnit)
	require.NoError(t, err)
	_, err = units.CreateWeightUnit(ctx, &domain.WeightUnit{Name: "lb", Seq: 2})
	require.NoError(t, err)
	f.repUnit = *repUnit
	f.weightUnit = *weightUnit

	f.userID, err = store.Users().Create(ctx, &domain.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	f.otherID, err = store.Users().Create(ctx, &domain.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	f.routines = NewRoutineService(store.Routines(), store.RoutineDays(), store.SetGroups(), store.Sets(), store)
	f.sessions = NewSessionService(store.Sessions(), store.RoutineDays(), store.SetGroups(), store.Sets(), store)
	f.groups = NewSetGroupService(store.SetGroups(), store.Sets(), store.Sessions(), store.RoutineDays(), store.Exercises(), store.Units(), store)
	f.sets = NewSetService(store.Sets(), store.SetGroups(), store.Sessions(), store.Exercises(), store.Units(), store)

	return f
}

// newDay creates a routine with one day template for the given user.
func (f *fixture) newDay(t *testing.T, userID primitive.ObjectID) *domain.RoutineDay {
	t.Helper()
	routine, err := f.routines.CreateRoutine(f.ctx, userID, "Push Pull Legs", "")
	require.NoError(t, err)
	day, err := f.routines.CreateDay(f.ctx, userID, routine.ID, "Leg day", []int{1, 4})
	require.NoError(t, err)
	return day
}

// newSession creates a session directly in the store, finished or active.
func (f *fixture) newSession(t *testing.T, userID primitive.ObjectID, finished bool) *domain.WorkoutSession {
	t.Helper()
	session := &domain.WorkoutSession{UserID: userID, Name: "Evening workout"}
	if finished {
		end := time.Now().UTC()
		session.EndTime = &end
	}
	_, err := f.store.Sessions().Create(f.ctx, session)
	require.NoError(t, err)
	return session
}

// newGroup creates a set group with numSets squat sets under the parent.
func (f *fixture) newGroup(t *testing.T, userID primitive.ObjectID, parent domain.SetGroupParent, numSets int) *SetGroupAggregate {
	t.Helper()
	aggregate, err := f.groups.Create(f.ctx, userID, parent, domain.SetGroupNormal, f.squat.ID, numSets)
	require.NoError(t, err)
	return aggregate
}

func ptr[T any](v T) *T { return &v }
