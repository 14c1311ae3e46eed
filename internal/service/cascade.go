// internal/service/cascade.go
package service

import (
	"context"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// deleteGroupCascade removes one set group together with all of its sets.
// Must run inside a transaction.
func deleteGroupCascade(ctx context.Context, setGroups repository.SetGroupRepository, sets repository.SetRepository, groupID primitive.ObjectID) error {
	if err := sets.DeleteByGroupID(ctx, groupID); err != nil {
		return err
	}
	return setGroups.Delete(ctx, groupID)
}

// deleteGroupsUnder removes every set group under a routine day or session,
// including the sets of each group. Must run inside a transaction. Shared by
// the routine day, session, and routine cascade paths.
func deleteGroupsUnder(ctx context.Context, setGroups repository.SetGroupRepository, sets repository.SetRepository, parent domain.SetGroupParent) error {
	groups, err := setGroups.GetByParent(ctx, parent)
	if err != nil {
		return err
	}
	for _, group := range groups {
		if err := sets.DeleteByGroupID(ctx, group.ID); err != nil {
			return err
		}
	}
	return setGroups.DeleteByParent(ctx, parent)
}
