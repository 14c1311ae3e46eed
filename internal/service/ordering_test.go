package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNextOrder(t *testing.T) {
	assert.Equal(t, 0, nextOrder(nil))
	assert.Equal(t, 0, nextOrder([]int{}))
	assert.Equal(t, 3, nextOrder([]int{0, 1, 2}))

	// Gaps are tolerated; appending never reuses a hole.
	assert.Equal(t, 8, nextOrder([]int{0, 2, 7}))
	assert.Equal(t, 6, nextOrder([]int{5, 3}))
}

func TestValidateReorder(t *testing.T) {
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	siblings := []primitive.ObjectID{a, b, c}

	t.Run("full permutation", func(t *testing.T) {
		require.NoError(t, validateReorder(siblings, []primitive.ObjectID{c, a, b}))
	})

	t.Run("subset is allowed", func(t *testing.T) {
		require.NoError(t, validateReorder(siblings, []primitive.ObjectID{b, a}))
	})

	t.Run("empty list", func(t *testing.T) {
		err := validateReorder(siblings, nil)
		require.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("id outside the sibling scope", func(t *testing.T) {
		err := validateReorder(siblings, []primitive.ObjectID{a, primitive.NewObjectID()})
		require.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("duplicate id", func(t *testing.T) {
		err := validateReorder(siblings, []primitive.ObjectID{a, b, a})
		require.ErrorIs(t, err, ErrValidationFailed)
	})
}
