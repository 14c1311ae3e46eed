package service

import (
	"testing"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutineCreate_RequiresName(t *testing.T) {
	f := newFixture(t)

	_, err := f.routines.CreateRoutine(f.ctx, f.userID, "", "notes")
	require.ErrorIs(t, err, ErrValidationFailed)

	routine, err := f.routines.CreateRoutine(f.ctx, f.userID, "Upper/Lower", "4 days a week")
	require.NoError(t, err)
	assert.Equal(t, f.userID, routine.UserID)
	assert.Equal(t, "Upper/Lower", routine.Name)
}

func TestRoutineGet_ForeignRoutineDenied(t *testing.T) {
	f := newFixture(t)
	routine, err := f.routines.CreateRoutine(f.ctx, f.userID, "Mine", "")
	require.NoError(t, err)

	_, _, err = f.routines.GetRoutine(f.ctx, f.otherID, routine.ID)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestRoutineUpdate_Partial(t *testing.T) {
	f := newFixture(t)
	routine, err := f.routines.CreateRoutine(f.ctx, f.userID, "Old name", "keep me")
	require.NoError(t, err)

	updated, err := f.routines.UpdateRoutine(f.ctx, f.userID, routine.ID, RoutineUpdateInput{
		Name: ptr("New name"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New name", updated.Name)
	assert.Equal(t, "keep me", updated.Description)

	_, err = f.routines.UpdateRoutine(f.ctx, f.userID, routine.ID, RoutineUpdateInput{Name: ptr("")})
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestRoutineDayCreate_ValidatesWeekdays(t *testing.T) {
	f := newFixture(t)
	routine, err := f.routines.CreateRoutine(f.ctx, f.userID, "PPL", "")
	require.NoError(t, err)

	_, err = f.routines.CreateDay(f.ctx, f.userID, routine.ID, "Push day", []int{0, 7})
	require.ErrorIs(t, err, ErrValidationFailed)

	// Weekdays are a set; the same day twice is rejected.
	_, err = f.routines.CreateDay(f.ctx, f.userID, routine.ID, "Push day", []int{1, 1})
	require.ErrorIs(t, err, ErrValidationFailed)

	day, err := f.routines.CreateDay(f.ctx, f.userID, routine.ID, "Push day", []int{0, 6})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 6}, day.Weekdays)
}

func TestRoutineDayUpdate_Partial(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)

	updated, err := f.routines.UpdateDay(f.ctx, f.userID, day.ID, RoutineDayUpdateInput{
		Weekdays: ptr([]int{2}),
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, updated.Weekdays)
	assert.Equal(t, day.Description, updated.Description)

	_, err = f.routines.UpdateDay(f.ctx, f.userID, day.ID, RoutineDayUpdateInput{
		Weekdays: ptr([]int{-1}),
	})
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestRoutineDelete_CascadesThroughDaysGroupsAndSets(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	group := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 2)

	require.NoError(t, f.routines.DeleteRoutine(f.ctx, f.userID, day.RoutineID))

	_, err := f.store.Routines().GetByID(f.ctx, day.RoutineID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.store.RoutineDays().GetByID(f.ctx, day.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.store.SetGroups().GetByID(f.ctx, group.Group.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	for _, set := range group.Sets {
		_, err := f.store.Sets().GetByID(f.ctx, set.ID)
		require.ErrorIs(t, err, repository.ErrNotFound)
	}
}

func TestRoutineDayDelete_Cascades(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	group := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 1)

	require.NoError(t, f.routines.DeleteDay(f.ctx, f.userID, day.ID))

	// The routine itself survives.
	_, err := f.store.Routines().GetByID(f.ctx, day.RoutineID)
	require.NoError(t, err)
	_, err = f.store.RoutineDays().GetByID(f.ctx, day.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.store.SetGroups().GetByID(f.ctx, group.Group.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRoutineDayGet_AssemblesAggregate(t *testing.T) {
	f := newFixture(t)
	day := f.newDay(t, f.userID)
	first := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 1)
	second := f.newGroup(t, f.userID, domain.TemplateParent(day.ID), 2)

	aggregate, err := f.routines.GetDay(f.ctx, f.userID, day.ID)
	require.NoError(t, err)
	assert.Equal(t, day.ID, aggregate.Day.ID)
	require.Len(t, aggregate.Groups, 2)
	assert.Equal(t, first.Group.ID, aggregate.Groups[0].Group.ID)
	assert.Equal(t, second.Group.ID, aggregate.Groups[1].Group.ID)
	assert.Len(t, aggregate.Groups[1].Sets, 2)
}
