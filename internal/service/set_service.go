package service

import (
	"context"
	"errors"
	"fmt"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetCreateInput carries the optional fields of a set creation. Omitted unit
// fields fall back to the system defaults; omitted numerics default to zero.
type SetCreateInput struct {
	Type             *domain.SetType
	Reps             *int
	RepetitionUnitID *primitive.ObjectID
	Weight           *float64
	WeightUnitID     *primitive.ObjectID
	RestTime         *int
}

// SetUpdateInput carries a partial update: only non-nil fields are applied,
// an absent field is untouched, never cleared. There is deliberately no
// SetGroupID here; a set can never move to a different group.
type SetUpdateInput struct {
	Type             *domain.SetType
	Reps             *int
	RepetitionUnitID *primitive.ObjectID
	Weight           *float64
	WeightUnitID     *primitive.ObjectID
	RestTime         *int
	Completed        *bool
}

// SetDeleteResult tells the caller whether deleting the set also removed its
// group (a group never survives with zero sets), so UI navigation can react.
type SetDeleteResult struct {
	SetGroupDeleted bool `json:"setGroupDeleted"`
}

// --- Service Interface ---
type SetService interface {
	Create(ctx context.Context, userID, setGroupID, exerciseID primitive.ObjectID, input SetCreateInput) (*domain.Set, error)
	Update(ctx context.Context, userID, setID primitive.ObjectID, input SetUpdateInput) (*domain.Set, error)
	Delete(ctx context.Context, userID, setID primitive.ObjectID) (*SetDeleteResult, error)
	Reorder(ctx context.Context, userID, setGroupID primitive.ObjectID, orderedSetIDs []primitive.ObjectID) error
}

// --- Service Implementation ---

type setService struct {
	sets      repository.SetRepository
	setGroups repository.SetGroupRepository
	sessions  repository.SessionRepository
	exercises repository.ExerciseRepository
	units     repository.UnitRepository
	tx        repository.TxManager
}

// NewSetService creates a new instance of setService.
func NewSetService(
	sets repository.SetRepository,
	setGroups repository.SetGroupRepository,
	sessions repository.SessionRepository,
	exercises repository.ExerciseRepository,
	units repository.UnitRepository,
	tx repository.TxManager,
) SetService {
	return &setService{
		sets:      sets,
		setGroups: setGroups,
		sessions:  sessions,
		exercises: exercises,
		units:     units,
		tx:        tx,
	}
}

// loadOwnedGroup fetches a set group and enforces the ownership guard.
func (s *setService) loadOwnedGroup(ctx context.Context, userID, setGroupID primitive.ObjectID) (*domain.SetGroup, error) {
	group, err := s.setGroups.GetByID(ctx, setGroupID)
	if err != nil {
		return nil, orNotFound(err, ErrSetGroupNotFound)
	}
	if err := assertOwned(group.UserID, userID); err != nil {
		return nil, err
	}
	return group, nil
}

// parentSession loads the session a group hangs off, or nil for a template
// group. Needed by the completion policy.
func (s *setService) parentSession(ctx context.Context, group *domain.SetGroup) (*domain.WorkoutSession, error) {
	if group.Parent.Kind != domain.ParentSession {
		return nil, nil
	}
	session, err := s.sessions.GetByID(ctx, group.Parent.ID)
	if err != nil {
		return nil, orNotFound(err, ErrSessionNotFound)
	}
	return session, nil
}

// Create appends a new set to a group. The set's initial completion state
// follows the parent session's lifecycle phase (initialCompletion); unit
// fields omitted by the caller fall back to the seeded defaults.
func (s *setService) Create(ctx context.Context, userID, setGroupID, exerciseID primitive.ObjectID, input SetCreateInput) (*domain.Set, error) {
	if exerciseID == primitive.NilObjectID {
		return nil, fmt.Errorf("exercise id is required: %w", ErrValidationFailed)
	}

	var created *domain.Set
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		group, err := s.loadOwnedGroup(ctx, userID, setGroupID)
		if err != nil {
			return err
		}
		if _, err := s.exercises.GetByID(ctx, exerciseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("exercise %s does not exist: %w", exerciseID.Hex(), ErrValidationFailed)
			}
			return err
		}

		session, err := s.parentSession(ctx, group)
		if err != nil {
			return err
		}

		siblings, err := s.sets.GetByGroupID(ctx, group.ID)
		if err != nil {
			return err
		}

		set, err := buildSet(ctx, s.units, group, exerciseID, input, nextOrder(setOrders(siblings)), initialCompletion(session))
		if err != nil {
			return err
		}
		if _, err := s.sets.Create(ctx, set); err != nil {
			return err
		}
		created = set
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// buildSet assembles a set row from the input, applying defaults for omitted
// fields. Shared between the single-set path and the group-creation path so
// default resolution cannot diverge.
func buildSet(ctx context.Context, units repository.UnitRepository, group *domain.SetGroup, exerciseID primitive.ObjectID, input SetCreateInput, order int, completed bool) (*domain.Set, error) {
	set := &domain.Set{
		UserID:     group.UserID,
		SetGroupID: group.ID,
		ExerciseID: exerciseID,
		Type:       domain.SetNormal,
		Order:      order,
		Completed:  completed,
	}
	if input.Type != nil {
		set.Type = *input.Type
	}
	if input.Reps != nil {
		set.Reps = *input.Reps
	}
	if input.Weight != nil {
		set.Weight = *input.Weight
	}
	if input.RestTime != nil {
		set.RestTime = *input.RestTime
	}

	if input.RepetitionUnitID != nil {
		set.RepetitionUnitID = *input.RepetitionUnitID
	}
	if input.WeightUnitID != nil {
		set.WeightUnitID = *input.WeightUnitID
	}
	if set.RepetitionUnitID == primitive.NilObjectID || set.WeightUnitID == primitive.NilObjectID {
		repUnit, weightUnit, err := resolveDefaultUnits(ctx, units)
		if err != nil {
			return nil, err
		}
		if set.RepetitionUnitID == primitive.NilObjectID {
			set.RepetitionUnitID = repUnit.ID
		}
		if set.WeightUnitID == primitive.NilObjectID {
			set.WeightUnitID = weightUnit.ID
		}
	}
	return set, nil
}

// Update applies a partial update to a set.
func (s *setService) Update(ctx context.Context, userID, setID primitive.ObjectID, input SetUpdateInput) (*domain.Set, error) {
	var updated *domain.Set
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		set, err := s.sets.GetByID(ctx, setID)
		if err != nil {
			return orNotFound(err, ErrSetNotFound)
		}
		if err := assertOwned(set.UserID, userID); err != nil {
			return err
		}

		if input.Type != nil {
			set.Type = *input.Type
		}
		if input.Reps != nil {
			set.Reps = *input.Reps
		}
		if input.RepetitionUnitID != nil {
			set.RepetitionUnitID = *input.RepetitionUnitID
		}
		if input.Weight != nil {
			set.Weight = *input.Weight
		}
		if input.WeightUnitID != nil {
			set.WeightUnitID = *input.WeightUnitID
		}
		if input.RestTime != nil {
			set.RestTime = *input.RestTime
		}
		if input.Completed != nil {
			set.Completed = *input.Completed
		}

		if err := s.sets.Update(ctx, set); err != nil {
			return orNotFound(err, ErrSetNotFound)
		}
		updated = set
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a set. When it was the last set of its group the group is
// deleted in the same transaction, and the result reports that to the
// caller.
func (s *setService) Delete(ctx context.Context, userID, setID primitive.ObjectID) (*SetDeleteResult, error) {
	result := &SetDeleteResult{}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		set, err := s.sets.GetByID(ctx, setID)
		if err != nil {
			return orNotFound(err, ErrSetNotFound)
		}
		if err := assertOwned(set.UserID, userID); err != nil {
			return err
		}

		if err := s.sets.Delete(ctx, setID); err != nil {
			return orNotFound(err, ErrSetNotFound)
		}

		remaining, err := s.sets.CountByGroupID(ctx, set.SetGroupID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			if err := s.setGroups.Delete(ctx, set.SetGroupID); err != nil {
				return orNotFound(err, ErrSetGroupNotFound)
			}
			result.SetGroupDeleted = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reorder renumbers the sets of one group to match the given id order.
// All-or-nothing: every id must belong to the group before any row is
// written.
func (s *setService) Reorder(ctx context.Context, userID, setGroupID primitive.ObjectID, orderedSetIDs []primitive.ObjectID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		group, err := s.loadOwnedGroup(ctx, userID, setGroupID)
		if err != nil {
			return err
		}

		siblings, err := s.sets.GetByGroupID(ctx, group.ID)
		if err != nil {
			return err
		}
		siblingIDs := make([]primitive.ObjectID, len(siblings))
		for i, sibling := range siblings {
			siblingIDs[i] = sibling.ID
		}
		if err := validateReorder(siblingIDs, orderedSetIDs); err != nil {
			return err
		}

		for position, id := range orderedSetIDs {
			if err := s.sets.UpdateOrder(ctx, id, position); err != nil {
				return err
			}
		}
		return nil
	})
}

func setOrders(sets []domain.Set) []int {
	orders := make([]int, len(sets))
	for i, set := range sets {
		orders[i] = set.Order
	}
	return orders
}
