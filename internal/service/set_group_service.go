package service

import (
	"context"
	"errors"
	"fmt"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetGroupUpdateInput carries a partial set group update.
type SetGroupUpdateInput struct {
	Type    *domain.SetGroupType
	Comment *string
}

// SetBulkEditInput is applied to every set of a group: non-nil fields
// overwrite the field on all sets, nil fields leave every set untouched.
type SetBulkEditInput struct {
	Reps             *int
	RepetitionUnitID *primitive.ObjectID
	Weight           *float64
	WeightUnitID     *primitive.ObjectID
	RestTime         *int
}

// SetGroupAggregate is a group together with its ordered sets.
type SetGroupAggregate struct {
	Group domain.SetGroup `json:"group"`
	Sets  []domain.Set    `json:"sets"`
}

// --- Service Interface ---
type SetGroupService interface {
	Create(ctx context.Context, userID primitive.ObjectID, parent domain.SetGroupParent, groupType domain.SetGroupType, exerciseID primitive.ObjectID, numSets int) (*SetGroupAggregate, error)
	Get(ctx context.Context, userID, setGroupID primitive.ObjectID) (*SetGroupAggregate, error)
	Update(ctx context.Context, userID, setGroupID primitive.ObjectID, input SetGroupUpdateInput) (*domain.SetGroup, error)
	Delete(ctx context.Context, userID, setGroupID primitive.ObjectID) error
	Reorder(ctx context.Context, userID primitive.ObjectID, parent domain.SetGroupParent, orderedGroupIDs []primitive.ObjectID) error
	ReplaceExercise(ctx context.Context, userID, setGroupID, newExerciseID primitive.ObjectID) error
	BulkEdit(ctx context.Context, userID, setGroupID primitive.ObjectID, input SetBulkEditInput) error
}

// --- Service Implementation ---

type setGroupService struct {
	setGroups   repository.SetGroupRepository
	sets        repository.SetRepository
	sessions    repository.SessionRepository
	routineDays repository.RoutineDayRepository
	exercises   repository.ExerciseRepository
	units       repository.UnitRepository
	tx          repository.TxManager
}

// NewSetGroupService creates a new instance of setGroupService.
func NewSetGroupService(
	setGroups repository.SetGroupRepository,
	sets repository.SetRepository,
	sessions repository.SessionRepository,
	routineDays repository.RoutineDayRepository,
	exercises repository.ExerciseRepository,
	units repository.UnitRepository,
	tx repository.TxManager,
) SetGroupService {
	return &setGroupService{
		setGroups:   setGroups,
		sets:        sets,
		sessions:    sessions,
		routineDays: routineDays,
		exercises:   exercises,
		units:       units,
		tx:          tx,
	}
}

// requireParent loads the routine day or session a parent reference points
// at and enforces ownership. Returns the session when the parent is one, so
// the completion policy can inspect its lifecycle phase; nil for templates.
func (s *setGroupService) requireParent(ctx context.Context, userID primitive.ObjectID, parent domain.SetGroupParent) (*domain.WorkoutSession, error) {
	switch parent.Kind {
	case domain.ParentSession:
		session, err := s.sessions.GetByID(ctx, parent.ID)
		if err != nil {
			return nil, orNotFound(err, ErrSessionNotFound)
		}
		if err := assertOwned(session.UserID, userID); err != nil {
			return nil, err
		}
		return session, nil
	case domain.ParentTemplate:
		day, err := s.routineDays.GetByID(ctx, parent.ID)
		if err != nil {
			return nil, orNotFound(err, ErrRoutineDayNotFound)
		}
		if err := assertOwned(day.UserID, userID); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown parent kind %q: %w", parent.Kind, ErrValidationFailed)
	}
}

func (s *setGroupService) loadOwnedGroup(ctx context.Context, userID, setGroupID primitive.ObjectID) (*domain.SetGroup, error) {
	group, err := s.setGroups.GetByID(ctx, setGroupID)
	if err != nil {
		return nil, orNotFound(err, ErrSetGroupNotFound)
	}
	if err := assertOwned(group.UserID, userID); err != nil {
		return nil, err
	}
	return group, nil
}

// Create appends a set group with numSets sets to a routine day or session.
// The completion state and default units are resolved once and applied to
// all created sets, so the N sets of one group can never disagree.
func (s *setGroupService) Create(ctx context.Context, userID primitive.ObjectID, parent domain.SetGroupParent, groupType domain.SetGroupType, exerciseID primitive.ObjectID, numSets int) (*SetGroupAggregate, error) {
	if exerciseID == primitive.NilObjectID {
		return nil, fmt.Errorf("exercise id is required: %w", ErrValidationFailed)
	}
	if numSets < 1 {
		return nil, fmt.Errorf("a set group needs at least one set: %w", ErrValidationFailed)
	}
	if groupType == "" {
		groupType = domain.SetGroupNormal
	}

	var aggregate *SetGroupAggregate
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		session, err := s.requireParent(ctx, userID, parent)
		if err != nil {
			return err
		}
		if _, err := s.exercises.GetByID(ctx, exerciseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("exercise %s does not exist: %w", exerciseID.Hex(), ErrValidationFailed)
			}
			return err
		}

		siblings, err := s.setGroups.GetByParent(ctx, parent)
		if err != nil {
			return err
		}

		group := &domain.SetGroup{
			UserID: userID,
			Parent: parent,
			Type:   groupType,
			Order:  nextOrder(groupOrders(siblings)),
		}
		if _, err := s.setGroups.Create(ctx, group); err != nil {
			return err
		}

		// Resolved once for the whole group.
		completed := initialCompletion(session)
		repUnit, weightUnit, err := resolveDefaultUnits(ctx, s.units)
		if err != nil {
			return err
		}

		sets := make([]domain.Set, 0, numSets)
		for i := 0; i < numSets; i++ {
			set := &domain.Set{
				UserID:           userID,
				SetGroupID:       group.ID,
				ExerciseID:       exerciseID,
				Type:             domain.SetNormal,
				Order:            i,
				RepetitionUnitID: repUnit.ID,
				WeightUnitID:     weightUnit.ID,
				Completed:        completed,
			}
			if _, err := s.sets.Create(ctx, set); err != nil {
				return err
			}
			sets = append(sets, *set)
		}
		aggregate = &SetGroupAggregate{Group: *group, Sets: sets}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return aggregate, nil
}

// Get returns a group with its sets in order.
func (s *setGroupService) Get(ctx context.Context, userID, setGroupID primitive.ObjectID) (*SetGroupAggregate, error) {
	group, err := s.loadOwnedGroup(ctx, userID, setGroupID)
	if err != nil {
		return nil, err
	}
	sets, err := s.sets.GetByGroupID(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	return &SetGroupAggregate{Group: *group, Sets: sets}, nil
}

// Update applies a partial update to a set group.
func (s *setGroupService) Update(ctx context.Context, userID, setGroupID primitive.ObjectID, input SetGroupUpdateInput) (*domain.SetGroup, error) {
	var updated *domain.SetGroup
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		group, err := s.loadOwnedGroup(ctx, userID, setGroupID)
		if err != nil {
			return err
		}
		if input.Type != nil {
			group.Type = *input.Type
		}
		if input.Comment != nil {
			group.Comment = *input.Comment
		}
		if err := s.setGroups.Update(ctx, group); err != nil {
			return orNotFound(err, ErrSetGroupNotFound)
		}
		updated = group
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a group and all of its sets in one transaction.
func (s *setGroupService) Delete(ctx context.Context, userID, setGroupID primitive.ObjectID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		group, err := s.loadOwnedGroup(ctx, userID, setGroupID)
		if err != nil {
			return err
		}
		return deleteGroupCascade(ctx, s.setGroups, s.sets, group.ID)
	})
}

// Reorder renumbers the groups under one parent to match the given id order.
// All-or-nothing: every id must belong to the parent before any row is
// written.
func (s *setGroupService) Reorder(ctx context.Context, userID primitive.ObjectID, parent domain.SetGroupParent, orderedGroupIDs []primitive.ObjectID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.requireParent(ctx, userID, parent); err != nil {
			return err
		}

		siblings, err := s.setGroups.GetByParent(ctx, parent)
		if err != nil {
			return err
		}
		siblingIDs := make([]primitive.ObjectID, len(siblings))
		for i, sibling := range siblings {
			siblingIDs[i] = sibling.ID
		}
		if err := validateReorder(siblingIDs, orderedGroupIDs); err != nil {
			return err
		}

		for position, id := range orderedGroupIDs {
			if err := s.setGroups.UpdateOrder(ctx, id, position); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceExercise swaps the exercise on every set of the group, leaving
// reps, weight, rest, order, and completion untouched.
func (s *setGroupService) ReplaceExercise(ctx context.Context, userID, setGroupID, newExerciseID primitive.ObjectID) error {
	if newExerciseID == primitive.NilObjectID {
		return fmt.Errorf("exercise id is required: %w", ErrValidationFailed)
	}
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		group, err := s.loadOwnedGroup(ctx, userID, setGroupID)
		if err != nil {
			return err
		}
		if _, err := s.exercises.GetByID(ctx, newExerciseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("exercise %s does not exist: %w", newExerciseID.Hex(), ErrValidationFailed)
			}
			return err
		}

		sets, err := s.sets.GetByGroupID(ctx, group.ID)
		if err != nil {
			return err
		}
		for i := range sets {
			sets[i].ExerciseID = newExerciseID
			if err := s.sets.Update(ctx, &sets[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// BulkEdit applies the same partial field set to every set of the group.
// Fields absent from the input are left untouched on every set.
func (s *setGroupService) BulkEdit(ctx context.Context, userID, setGroupID primitive.ObjectID, input SetBulkEditInput) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		group, err := s.loadOwnedGroup(ctx, userID, setGroupID)
		if err != nil {
			return err
		}
		sets, err := s.sets.GetByGroupID(ctx, group.ID)
		if err != nil {
			return err
		}
		for i := range sets {
			if input.Reps != nil {
				sets[i].Reps = *input.Reps
			}
			if input.RepetitionUnitID != nil {
				sets[i].RepetitionUnitID = *input.RepetitionUnitID
			}
			if input.Weight != nil {
				sets[i].Weight = *input.Weight
			}
			if input.WeightUnitID != nil {
				sets[i].WeightUnitID = *input.WeightUnitID
			}
			if input.RestTime != nil {
				sets[i].RestTime = *input.RestTime
			}
			if err := s.sets.Update(ctx, &sets[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func groupOrders(groups []domain.SetGroup) []int {
	orders := make([]int, len(groups))
	for i, group := range groups {
		orders[i] = group.Order
	}
	return orders
}
