package service

import (
	"testing"
	"time"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSessionCreate_Empty(t *testing.T) {
	f := newFixture(t)

	aggregate, err := f.sessions.Create(f.ctx, f.userID, SessionCreateInput{
		Name: ptr("Quick pump"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Quick pump", aggregate.Session.Name)
	assert.Nil(t, aggregate.Session.TemplateID)
	assert.False(t, aggregate.Session.Completed())
	assert.Empty(t, aggregate.Groups)
}

func TestSessionCreate_FromTemplate(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	parent := domain.TemplateParent(day.ID)

	squats := f.newGroup(t, f.userID, parent, 2)
	_, err := f.groups.Create(f.ctx, f.userID, parent, domain.SetGroupSuperset, f.bench.ID, 1)
	require.NoError(t, err)
	_, err = f.sets.Update(f.ctx, f.userID, squats.Sets[0].ID, SetUpdateInput{
		Reps:   ptr(5),
		Weight: ptr(100.0),
	})
	require.NoError(t, err)

	aggregate, err := f.sessions.Create(f.ctx, f.userID, SessionCreateInput{TemplateID: &day.ID})
	require.NoError(t, err)

	// Name falls back to the day description.
	assert.Equal(t, day.Description, aggregate.Session.Name)
	require.NotNil(t, aggregate.Session.TemplateID)
	assert.Equal(t, day.ID, *aggregate.Session.TemplateID)

	require.Len(t, aggregate.Groups, 2)
	first, second := aggregate.Groups[0], aggregate.Groups[1]

	assert.Equal(t, domain.SessionParent(aggregate.Session.ID), first.Group.Parent)
	assert.Equal(t, 0, first.Group.Order)
	assert.Equal(t, domain.SetGroupSuperset, second.Group.Type)
	assert.Equal(t, 1, second.Group.Order)

	require.Len(t, first.Sets, 2)
	assert.Equal(t, 5, first.Sets[0].Reps)
	assert.Equal(t, 100.0, first.Sets[0].Weight)
	assert.Equal(t, f.squat.ID, first.Sets[0].ExerciseID)
	for _, set := range first.Sets {
		assert.False(t, set.Completed)
		assert.NotEqual(t, primitive.NilObjectID, set.ID)
	}

	// Clones are new rows; the template is untouched.
	templateGroups, err := f.store.SetGroups().GetByParent(f.ctx, parent)
	require.NoError(t, err)
	require.Len(t, templateGroups, 2)
	assert.NotEqual(t, templateGroups[0].ID, first.Group.ID)
}

func TestSessionCreate_ReindexesSparseTemplateOrders(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	parent := domain.TemplateParent(day.ID)
	f.newGroup(t, f.userID, parent, 1)
	second := f.newGroup(t, f.userID, parent, 1)

	// Punch a hole in the template's order sequence.
	require.NoError(t, f.store.SetGroups().UpdateOrder(f.ctx, second.Group.ID, 9))

	aggregate, err := f.sessions.Create(f.ctx, f.userID, SessionCreateInput{TemplateID: &day.ID})
	require.NoError(t, err)

	require.Len(t, aggregate.Groups, 2)
	assert.Equal(t, 0, aggregate.Groups[0].Group.Order)
	assert.Equal(t, 1, aggregate.Groups[1].Group.Order)
}

func TestSessionCreate_ExplicitNameWins(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)

	aggregate, err := f.sessions.Create(f.ctx, f.userID, SessionCreateInput{
		TemplateID: &day.ID,
		Name:       ptr("Heavy leg day"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Heavy leg day", aggregate.Session.Name)
}

func TestSessionCreate_ForeignTemplateDenied(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)

	_, err := f.sessions.Create(f.ctx, f.otherID, SessionCreateInput{TemplateID: &day.ID})
	require.ErrorIs(t, err, ErrAccessDenied)

	// Nothing was created for the denied caller.
	sessions, err := f.sessions.List(f.ctx, f.otherID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSessionUpdate_FinishAndRate(t *testing.T) {
	f := newFixture(t)
	aggregate, err := f.sessions.Create(f.ctx, f.userID, SessionCreateInput{Name: ptr("Morning")})
	require.NoError(t, err)

	end := time.Now().UTC()
	updated, err := f.sessions.Update(f.ctx, f.userID, aggregate.Session.ID, SessionUpdateInput{
		EndTime:    &end,
		Impression: ptr(4),
	})
	require.NoError(t, err)
	assert.True(t, updated.Completed())
	require.NotNil(t, updated.Impression)
	assert.Equal(t, 4, *updated.Impression)
}

func TestSessionUpdate_ImpressionOutOfRange(t *testing.T) {
	f := newFixture(t)
	aggregate, err := f.sessions.Create(f.ctx, f.userID, SessionCreateInput{})
	require.NoError(t, err)

	_, err = f.sessions.Update(f.ctx, f.userID, aggregate.Session.ID, SessionUpdateInput{Impression: ptr(0)})
	require.ErrorIs(t, err, ErrValidationFailed)
	_, err = f.sessions.Update(f.ctx, f.userID, aggregate.Session.ID, SessionUpdateInput{Impression: ptr(6)})
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestSessionDelete_Cascades(t *testing.T) {
	f := newFixture(t)
	session := f.newSession(t, f.userID, false)
	group := f.newGroup(t, f.userID, domain.SessionParent(session.ID), 2)

	require.NoError(t, f.sessions.Delete(f.ctx, f.userID, session.ID))

	_, err := f.store.Sessions().GetByID(f.ctx, session.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.store.SetGroups().GetByID(f.ctx, group.Group.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	for _, set := range group.Sets {
		_, err := f.store.Sets().GetByID(f.ctx, set.ID)
		require.ErrorIs(t, err, repository.ErrNotFound)
	}
}

func TestSessionGet_AssemblesOrderedTree(t *testing.T) {
	f := newFixture(t)
	session := f.newSession(t, f.userID, false)
	parent := domain.SessionParent(session.ID)
	first := f.newGroup(t, f.userID, parent, 1)
	second := f.newGroup(t, f.userID, parent, 2)

	aggregate, err := f.sessions.Get(f.ctx, f.userID, session.ID)
	require.NoError(t, err)
	require.Len(t, aggregate.Groups, 2)
	assert.Equal(t, first.Group.ID, aggregate.Groups[0].Group.ID)
	assert.Equal(t, second.Group.ID, aggregate.Groups[1].Group.ID)
	assert.Len(t, aggregate.Groups[1].Sets, 2)
}
