package service

import (
	"context"
	"fmt"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoutineUpdateInput carries a partial routine update.
type RoutineUpdateInput struct {
	Name        *string
	Description *string
}

// RoutineDayUpdateInput carries a partial routine day update.
type RoutineDayUpdateInput struct {
	Description *string
	Weekdays    *[]int
}

// RoutineDayAggregate is a routine day together with its ordered groups and
// sets.
type RoutineDayAggregate struct {
	Day    domain.RoutineDay   `json:"day"`
	Groups []SetGroupAggregate `json:"groups"`
}

// --- Service Interface ---
type RoutineService interface {
	CreateRoutine(ctx context.Context, userID primitive.ObjectID, name, description string) (*domain.Routine, error)
	GetRoutines(ctx context.Context, userID primitive.ObjectID) ([]domain.Routine, error)
	GetRoutine(ctx context.Context, userID, routineID primitive.ObjectID) (*domain.Routine, []domain.RoutineDay, error)
	UpdateRoutine(ctx context.Context, userID, routineID primitive.ObjectID, input RoutineUpdateInput) (*domain.Routine, error)
	DeleteRoutine(ctx context.Context, userID, routineID primitive.ObjectID) error

	CreateDay(ctx context.Context, userID, routineID primitive.ObjectID, description string, weekdays []int) (*domain.RoutineDay, error)
	GetDay(ctx context.Context, userID, dayID primitive.ObjectID) (*RoutineDayAggregate, error)
	UpdateDay(ctx context.Context, userID, dayID primitive.ObjectID, input RoutineDayUpdateInput) (*domain.RoutineDay, error)
	DeleteDay(ctx context.Context, userID, dayID primitive.ObjectID) error
}

// --- Service Implementation ---

type routineService struct {
	routines    repository.RoutineRepository
	routineDays repository.RoutineDayRepository
	setGroups   repository.SetGroupRepository
	sets        repository.SetRepository
	tx          repository.TxManager
}

// NewRoutineService creates a new instance of routineService.
func NewRoutineService(
	routines repository.RoutineRepository,
	routineDays repository.RoutineDayRepository,
	setGroups repository.SetGroupRepository,
	sets repository.SetRepository,
	tx repository.TxManager,
) RoutineService {
	return &routineService{
		routines:    routines,
		routineDays: routineDays,
		setGroups:   setGroups,
		sets:        sets,
		tx:          tx,
	}
}

// validateWeekdays checks a weekday selection: each value in 0..6, no value
// listed twice.
func validateWeekdays(weekdays []int) error {
	seen := make(map[int]bool, len(weekdays))
	for _, d := range weekdays {
		if d < 0 || d > 6 {
			return fmt.Errorf("weekday %d is out of range 0..6: %w", d, ErrValidationFailed)
		}
		if seen[d] {
			return fmt.Errorf("weekday %d is listed twice: %w", d, ErrValidationFailed)
		}
		seen[d] = true
	}
	return nil
}

// === Routines ===

// CreateRoutine creates a new, empty routine.
func (s *routineService) CreateRoutine(ctx context.Context, userID primitive.ObjectID, name, description string) (*domain.Routine, error) {
	if name == "" {
		return nil, fmt.Errorf("routine name is required: %w", ErrValidationFailed)
	}
	routine := &domain.Routine{
		UserID:      userID,
		Name:        name,
		Description: description,
	}
	if _, err := s.routines.Create(ctx, routine); err != nil {
		return nil, err
	}
	return routine, nil
}

// GetRoutines lists the user's routines.
func (s *routineService) GetRoutines(ctx context.Context, userID primitive.ObjectID) ([]domain.Routine, error) {
	return s.routines.GetByUserID(ctx, userID)
}

// GetRoutine returns one routine with its days.
func (s *routineService) GetRoutine(ctx context.Context, userID, routineID primitive.ObjectID) (*domain.Routine, []domain.RoutineDay, error) {
	routine, err := s.routines.GetByID(ctx, routineID)
	if err != nil {
		return nil, nil, orNotFound(err, ErrRoutineNotFound)
	}
	if err := assertOwned(routine.UserID, userID); err != nil {
		return nil, nil, err
	}
	days, err := s.routineDays.GetByRoutineID(ctx, routine.ID)
	if err != nil {
		return nil, nil, err
	}
	return routine, days, nil
}

// UpdateRoutine applies a partial update to a routine.
func (s *routineService) UpdateRoutine(ctx context.Context, userID, routineID primitive.ObjectID, input RoutineUpdateInput) (*domain.Routine, error) {
	if input.Name != nil && *input.Name == "" {
		return nil, fmt.Errorf("routine name cannot be empty: %w", ErrValidationFailed)
	}

	var updated *domain.Routine
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		routine, err := s.routines.GetByID(ctx, routineID)
		if err != nil {
			return orNotFound(err, ErrRoutineNotFound)
		}
		if err := assertOwned(routine.UserID, userID); err != nil {
			return err
		}
		if input.Name != nil {
			routine.Name = *input.Name
		}
		if input.Description != nil {
			routine.Description = *input.Description
		}
		if err := s.routines.Update(ctx, routine); err != nil {
			return orNotFound(err, ErrRoutineNotFound)
		}
		updated = routine
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteRoutine removes a routine and cascades through every day, set group,
// and set under it, in one transaction.
func (s *routineService) DeleteRoutine(ctx context.Context, userID, routineID primitive.ObjectID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		routine, err := s.routines.GetByID(ctx, routineID)
		if err != nil {
			return orNotFound(err, ErrRoutineNotFound)
		}
		if err := assertOwned(routine.UserID, userID); err != nil {
			return err
		}

		days, err := s.routineDays.GetByRoutineID(ctx, routine.ID)
		if err != nil {
			return err
		}
		for _, day := range days {
			if err := deleteGroupsUnder(ctx, s.setGroups, s.sets, domain.TemplateParent(day.ID)); err != nil {
				return err
			}
			if err := s.routineDays.Delete(ctx, day.ID); err != nil {
				return err
			}
		}
		return s.routines.Delete(ctx, routine.ID)
	})
}

// === Routine Days ===

// CreateDay adds a day template to a routine.
func (s *routineService) CreateDay(ctx context.Context, userID, routineID primitive.ObjectID, description string, weekdays []int) (*domain.RoutineDay, error) {
	if description == "" {
		return nil, fmt.Errorf("day description is required: %w", ErrValidationFailed)
	}
	if err := validateWeekdays(weekdays); err != nil {
		return nil, err
	}

	routine, err := s.routines.GetByID(ctx, routineID)
	if err != nil {
		return nil, orNotFound(err, ErrRoutineNotFound)
	}
	if err := assertOwned(routine.UserID, userID); err != nil {
		return nil, err
	}

	day := &domain.RoutineDay{
		RoutineID:   routine.ID,
		UserID:      userID,
		Description: description,
		Weekdays:    weekdays,
	}
	if _, err := s.routineDays.Create(ctx, day); err != nil {
		return nil, err
	}
	return day, nil
}

// GetDay returns one day with its groups and sets in order.
func (s *routineService) GetDay(ctx context.Context, userID, dayID primitive.ObjectID) (*RoutineDayAggregate, error) {
	day, err := s.routineDays.GetByID(ctx, dayID)
	if err != nil {
		return nil, orNotFound(err, ErrRoutineDayNotFound)
	}
	if err := assertOwned(day.UserID, userID); err != nil {
		return nil, err
	}

	groups, err := s.setGroups.GetByParent(ctx, domain.TemplateParent(day.ID))
	if err != nil {
		return nil, err
	}
	aggregate := &RoutineDayAggregate{Day: *day, Groups: make([]SetGroupAggregate, 0, len(groups))}
	for _, group := range groups {
		sets, err := s.sets.GetByGroupID(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		aggregate.Groups = append(aggregate.Groups, SetGroupAggregate{Group: group, Sets: sets})
	}
	return aggregate, nil
}

// UpdateDay applies a partial update to a routine day.
func (s *routineService) UpdateDay(ctx context.Context, userID, dayID primitive.ObjectID, input RoutineDayUpdateInput) (*domain.RoutineDay, error) {
	if input.Description != nil && *input.Description == "" {
		return nil, fmt.Errorf("day description cannot be empty: %w", ErrValidationFailed)
	}
	if input.Weekdays != nil {
		if err := validateWeekdays(*input.Weekdays); err != nil {
			return nil, err
		}
	}

	var updated *domain.RoutineDay
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		day, err := s.routineDays.GetByID(ctx, dayID)
		if err != nil {
			return orNotFound(err, ErrRoutineDayNotFound)
		}
		if err := assertOwned(day.UserID, userID); err != nil {
			return err
		}
		if input.Description != nil {
			day.Description = *input.Description
		}
		if input.Weekdays != nil {
			day.Weekdays = *input.Weekdays
		}
		if err := s.routineDays.Update(ctx, day); err != nil {
			return orNotFound(err, ErrRoutineDayNotFound)
		}
		updated = day
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteDay removes a day and cascades through its set groups and sets in
// one transaction.
func (s *routineService) DeleteDay(ctx context.Context, userID, dayID primitive.ObjectID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		day, err := s.routineDays.GetByID(ctx, dayID)
		if err != nil {
			return orNotFound(err, ErrRoutineDayNotFound)
		}
		if err := assertOwned(day.UserID, userID); err != nil {
			return err
		}

		if err := deleteGroupsUnder(ctx, s.setGroups, s.sets, domain.TemplateParent(day.ID)); err != nil {
			return err
		}
		return s.routineDays.Delete(ctx, day.ID)
	})
}
