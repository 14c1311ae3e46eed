package service

import (
	"testing"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSetGroupCreate_SeedsRequestedSets(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)

	aggregate, err := f.groups.Create(f.ctx, f.userID, domain.TemplateParent(day.ID), domain.SetGroupNormal, f.squat.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, 0, aggregate.Group.Order)
	require.Len(t, aggregate.Sets, 3)
	for position, set := range aggregate.Sets {
		assert.Equal(t, position, set.Order)
		assert.Equal(t, f.squat.ID, set.ExerciseID)
		assert.Equal(t, f.repUnit.ID, set.RepetitionUnitID)
		assert.Equal(t, f.weightUnit.ID, set.WeightUnitID)
		assert.False(t, set.Completed)
	}

	// Second group appends after the first.
	second, err := f.groups.Create(f.ctx, f.userID, domain.TemplateParent(day.ID), domain.SetGroupSuperset, f.bench.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Group.Order)
}

func TestSetGroupCreate_RequiresAtLeastOneSet(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)

	_, err := f.groups.Create(f.ctx, f.userID, domain.TemplateParent(day.ID), domain.SetGroupNormal, f.squat.ID, 0)
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestSetGroupCreate_FinishedSessionSpawnsCompletedSets(t *testing.T) {
	f := newFixture(t)
	session := f.newSession(t, f.userID, true)

	aggregate, err := f.groups.Create(f.ctx, f.userID, domain.SessionParent(session.ID), domain.SetGroupNormal, f.squat.ID, 2)
	require.NoError(t, err)
	for _, set := range aggregate.Sets {
		assert.True(t, set.Completed)
	}
}

func TestSetGroupCreate_MissingParent(t *testing.T) {
	f := newFixture(t)

	_, err := f.groups.Create(f.ctx, f.userID, domain.SessionParent(primitive.NewObjectID()), domain.SetGroupNormal, f.squat.ID, 1)
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, err = f.groups.Create(f.ctx, f.userID, domain.TemplateParent(primitive.NewObjectID()), domain.SetGroupNormal, f.squat.ID, 1)
	require.ErrorIs(t, err, ErrRoutineDayNotFound)
}

func TestSetGroupCreate_ForeignParentDenied(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)

	_, err := f.groups.Create(f.ctx, f.otherID, domain.TemplateParent(day.ID), domain.SetGroupNormal, f.squat.ID, 1)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestSetGroupDelete_CascadesToSets(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	group := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 3)

	require.NoError(t, f.groups.Delete(f.ctx, f.userID, group.Group.ID))

	_, err := f.store.SetGroups().GetByID(f.ctx, group.Group.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	for _, set := range group.Sets {
		_, err := f.store.Sets().GetByID(f.ctx, set.ID)
		require.ErrorIs(t, err, repository.ErrNotFound)
	}
}

func TestSetGroupReorder_AllOrNothing(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	parent := domain.TemplateParent(day.ID)
	first := f.newGroup(t, f.userID, parent, 1)
	second := f.newGroup(t, f.userID, parent, 1)
	third := f.newGroup(t, f.userID, parent, 1)

	err := f.groups.Reorder(f.ctx, f.userID, parent, []primitive.ObjectID{
		third.Group.ID,
		primitive.NewObjectID(),
	})
	require.ErrorIs(t, err, ErrValidationFailed)

	groups, err := f.store.SetGroups().GetByParent(f.ctx, parent)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, first.Group.ID, groups[0].ID)

	require.NoError(t, f.groups.Reorder(f.ctx, f.userID, parent, []primitive.ObjectID{
		third.Group.ID, first.Group.ID, second.Group.ID,
	}))
	groups, err = f.store.SetGroups().GetByParent(f.ctx, parent)
	require.NoError(t, err)
	assert.Equal(t, third.Group.ID, groups[0].ID)
	assert.Equal(t, first.Group.ID, groups[1].ID)
	assert.Equal(t, second.Group.ID, groups[2].ID)
}

func TestSetGroupReplaceExercise(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	group := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 2)

	_, err := f.sets.Update(f.ctx, f.userID, group.Sets[0].ID, SetUpdateInput{Reps: ptr(10), Weight: ptr(60.0)})
	require.NoError(t, err)

	require.NoError(t, f.groups.ReplaceExercise(f.ctx, f.userID, group.Group.ID, f.bench.ID))

	reloaded, err := f.groups.Get(f.ctx, f.userID, group.Group.ID)
	require.NoError(t, err)
	for _, set := range reloaded.Sets {
		assert.Equal(t, f.bench.ID, set.ExerciseID)
	}
	// Performance data survives the swap.
	assert.Equal(t, 10, reloaded.Sets[0].Reps)
	assert.Equal(t, 60.0, reloaded.Sets[0].Weight)
}

func TestSetGroupReplaceExercise_UnknownExercise(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	group := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 1)

	err := f.groups.ReplaceExercise(f.ctx, f.userID, group.Group.ID, primitive.NewObjectID())
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestSetGroupBulkEdit_PartialFields(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	group := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 3)

	_, err := f.sets.Update(f.ctx, f.userID, group.Sets[1].ID, SetUpdateInput{Weight: ptr(80.0)})
	require.NoError(t, err)

	require.NoError(t, f.groups.BulkEdit(f.ctx, f.userID, group.Group.ID, SetBulkEditInput{
		Reps:     ptr(5),
		RestTime: ptr(180),
	}))

	reloaded, err := f.groups.Get(f.ctx, f.userID, group.Group.ID)
	require.NoError(t, err)
	for _, set := range reloaded.Sets {
		assert.Equal(t, 5, set.Reps)
		assert.Equal(t, 180, set.RestTime)
	}
	// Weight was not part of the edit and stays per-set.
	assert.Equal(t, 80.0, reloaded.Sets[1].Weight)
	assert.Equal(t, 0.0, reloaded.Sets[0].Weight)
}

func TestSetGroupUpdate_TypeAndComment(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	group := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 1)

	updated, err := f.groups.Update(f.ctx, f.userID, group.Group.ID, SetGroupUpdateInput{
		Type:    ptr(domain.SetGroupSuperset),
		Comment: ptr("slow eccentric"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SetGroupSuperset, updated.Type)
	assert.Equal(t, "slow eccentric", updated.Comment)

	// Order is untouched by a plain update.
	assert.Equal(t, group.Group.Order, updated.Order)
}
