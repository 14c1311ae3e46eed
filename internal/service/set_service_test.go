package service

import (
	"context"
	"testing"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSetCreate_TemplateStartsIncomplete(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	group := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 1)

	set, err := f.sets.Create(f.ctx, f.userID, group.Group.ID, f.squat.ID, SetCreateInput{Reps: ptr(8)})
	require.NoError(t, err)

	assert.False(t, set.Completed)
	assert.Equal(t, 8, set.Reps)
	assert.Equal(t, 1, set.Order) // appended after the group's initial set
	assert.Equal(t, f.repUnit.ID, set.RepetitionUnitID)
	assert.Equal(t, f.weightUnit.ID, set.WeightUnitID)
}

func TestSetCreate_CompletionFollowsSessionPhase(t *testing.T) {
	f := newFixture(t)

	t.Run("active session", func(t *testing.T) {
		session := f.newSession(t, f.userID, false)
		group := f.newGroup(t, f.userID, domain.SessionParent(session.ID), 1)

		set, err := f.sets.Create(f.ctx, f.userID, group.Group.ID, f.squat.ID, SetCreateInput{})
		require.NoError(t, err)
		assert.False(t, set.Completed)
	})

	t.Run("finished session", func(t *testing.T) {
		session := f.newSession(t, f.userID, true)
		group := f.newGroup(t, f.userID, domain.SessionParent(session.ID), 1)

		set, err := f.sets.Create(f.ctx, f.userID, group.Group.ID, f.squat.ID, SetCreateInput{})
		require.NoError(t, err)
		assert.True(t, set.Completed)
	})
}

func TestSetCreate_UnknownExercise(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	group := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 1)

	_, err := f.sets.Create(f.ctx, f.userID, group.Group.ID, primitive.NewObjectID(), SetCreateInput{})
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestSetCreate_ExplicitUnitsWin(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	group := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 1)

	units, err := f.store.Units().ListWeightUnits(f.ctx)
	require.NoError(t, err)
	lb := units[1]

	set, err := f.sets.Create(f.ctx, f.userID, group.Group.ID, f.squat.ID, SetCreateInput{
		WeightUnitID: &lb.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, lb.ID, set.WeightUnitID)
	assert.Equal(t, f.repUnit.ID, set.RepetitionUnitID) // omitted field still defaults
}

func TestSetCreate_UnseededUnitsFailPrecondition(t *testing.T) {
	// No fixture here: the point is a store whose unit tables were never
	// seeded.
	store := memory.NewStore()
	ctx := context.Background()
	exercise := store.AddExercise(domain.Exercise{Name: "Squat"})
	uid, err := store.Users().Create(ctx, &domain.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	day := &domain.RoutineDay{RoutineID: primitive.NewObjectID(), UserID: uid, Description: "Leg day"}
	_, err = store.RoutineDays().Create(ctx, day)
	require.NoError(t, err)

	groups := NewSetGroupService(store.SetGroups(), store.Sets(), store.Sessions(), store.RoutineDays(), store.Exercises(), store.Units(), store)
	sets := NewSetService(store.Sets(), store.SetGroups(), store.Sessions(), store.Exercises(), store.Units(), store)
	parent := domain.TemplateParent(day.ID)

	_, err = groups.Create(ctx, uid, parent, domain.SetGroupNormal, exercise.ID, 2)
	require.ErrorIs(t, err, ErrPreconditionFailed)
	require.ErrorIs(t, err, ErrNoDefaultUnits)

	// The transaction rolled back; no group row survives.
	remaining, err := store.SetGroups().GetByParent(ctx, parent)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// Appending a single set hits the same wall.
	group := &domain.SetGroup{UserID: uid, Parent: parent, Type: domain.SetGroupNormal}
	_, err = store.SetGroups().Create(ctx, group)
	require.NoError(t, err)

	_, err = sets.Create(ctx, uid, group.ID, exercise.ID, SetCreateInput{})
	require.ErrorIs(t, err, ErrPreconditionFailed)
	count, err := store.Sets().CountByGroupID(ctx, group.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSetUpdate_PartialLeavesOtherFieldsAlone(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	group := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 1)
	set, err := f.sets.Create(f.ctx, f.userID, group.Group.ID, f.squat.ID, SetCreateInput{
		Reps:   ptr(10),
		Weight: ptr(100.0),
	})
	require.NoError(t, err)

	updated, err := f.sets.Update(f.ctx, f.userID, set.ID, SetUpdateInput{Reps: ptr(12)})
	require.NoError(t, err)

	assert.Equal(t, 12, updated.Reps)
	assert.Equal(t, 100.0, updated.Weight)
	assert.Equal(t, set.ExerciseID, updated.ExerciseID)
	assert.False(t, updated.Completed)
}

func TestSetUpdate_ToggleCompleted(t *testing.T) {
	f := newFixture(t)
	session := f.newSession(t, f.userID, false)
	group := f.newGroup(t, f.userID, domain.SessionParent(session.ID), 1)
	set := group.Sets[0]

	updated, err := f.sets.Update(f.ctx, f.userID, set.ID, SetUpdateInput{Completed: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	updated, err = f.sets.Update(f.ctx, f.userID, set.ID, SetUpdateInput{Completed: ptr(false)})
	require.NoError(t, err)
	assert.False(t, updated.Completed)
}

func TestSetUpdate_OtherUserDenied(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	group := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 1)
	set := group.Sets[0]

	_, err := f.sets.Update(f.ctx, f.otherID, set.ID, SetUpdateInput{Reps: ptr(5)})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestSetDelete_GroupSurvivesWhileSetsRemain(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	group := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 2)

	result, err := f.sets.Delete(f.ctx, f.userID, group.Sets[0].ID)
	require.NoError(t, err)
	assert.False(t, result.SetGroupDeleted)

	_, err = f.store.SetGroups().GetByID(f.ctx, group.Group.ID)
	require.NoError(t, err)
}

func TestSetDelete_LastSetTakesGroupWithIt(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	group := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 1)

	result, err := f.sets.Delete(f.ctx, f.userID, group.Sets[0].ID)
	require.NoError(t, err)
	assert.True(t, result.SetGroupDeleted)

	_, err = f.groups.Get(f.ctx, f.userID, group.Group.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSetReorder(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	group := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 3)
	ids := []primitive.ObjectID{group.Sets[2].ID, group.Sets[0].ID, group.Sets[1].ID}

	require.NoError(t, f.sets.Reorder(f.ctx, f.userID, group.Group.ID, ids))

	reloaded, err := f.groups.Get(f.ctx, f.userID, group.Group.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Sets, 3)
	for position, want := range ids {
		assert.Equal(t, want, reloaded.Sets[position].ID)
		assert.Equal(t, position, reloaded.Sets[position].Order)
	}
}

func TestSetReorder_ForeignIDRejectedBeforeAnyWrite(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	group := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 2)

	err := f.sets.Reorder(f.ctx, f.userID, group.Group.ID, []primitive.ObjectID{
		group.Sets[1].ID,
		primitive.NewObjectID(),
	})
	require.ErrorIs(t, err, ErrValidationFailed)

	// No partial renumbering happened.
	reloaded, err := f.groups.Get(f.ctx, f.userID, group.Group.ID)
	require.NoError(t, err)
	assert.Equal(t, group.Sets[0].ID, reloaded.Sets[0].ID)
	assert.Equal(t, group.Sets[1].ID, reloaded.Sets[1].ID)
}
