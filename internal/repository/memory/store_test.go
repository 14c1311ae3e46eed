package memory

import (
	"context"
	"errors"
	"testing"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWithinTransaction_RollsBackOnError(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	uid, err := store.Users().Create(ctx, &domain.User{Name: "Alice", Email: "a@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	routine := &domain.Routine{UserID: uid, Name: "Before"}
	_, err = store.Routines().Create(ctx, routine)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := store.Routines().Create(ctx, &domain.Routine{UserID: uid, Name: "Inside"}); err != nil {
			return err
		}
		if err := store.Routines().Delete(ctx, routine.ID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// The pre-transaction state is restored.
	got, err := store.Routines().GetByID(ctx, routine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Before", got.Name)
	all, err := store.Routines().GetByUserID(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestWithinTransaction_CommitsOnSuccess(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	uid, err := store.Users().Create(ctx, &domain.User{Name: "Alice", Email: "a@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	err = store.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := store.Routines().Create(ctx, &domain.Routine{UserID: uid, Name: "Kept"})
		return err
	})
	require.NoError(t, err)

	all, err := store.Routines().GetByUserID(ctx, uid)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Kept", all[0].Name)
}

func TestSetGroupsSortByOrder(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	uid, err := store.Users().Create(ctx, &domain.User{Name: "Alice", Email: "a@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	parent := domain.TemplateParent(primitive.NewObjectID())

	for _, order := range []int{2, 0, 1} {
		_, err := store.SetGroups().Create(ctx, &domain.SetGroup{
			UserID: uid,
			Parent: parent,
			Type:   domain.SetGroupNormal,
			Order:  order,
		})
		require.NoError(t, err)
	}

	groups, err := store.SetGroups().GetByParent(ctx, parent)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	for i, g := range groups {
		assert.Equal(t, i, g.Order)
	}
}

func TestNotFoundErrors(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.Routines().GetByID(ctx, primitive.NewObjectID())
	require.ErrorIs(t, err, repository.ErrNotFound)
	err = store.Sets().Delete(ctx, primitive.NewObjectID())
	require.ErrorIs(t, err, repository.ErrNotFound)
}
