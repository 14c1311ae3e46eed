// internal/service/completion.go
package service

import (
	"context"
	"errors"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"
)

// initialCompletion is the policy deciding whether a newly created set starts
// completed: true only when the parent set group belongs to a session that is
// already finished (logging a set into a closed workout records it as done).
// Template groups and active sessions start their sets uncompleted.
//
// Template instantiation does NOT call this: cloned sets are always created
// with completed=false. A fresh session starts active regardless of the
// template's state.
func initialCompletion(parentSession *domain.WorkoutSession) bool {
	return parentSession != nil && parentSession.Completed()
}

// resolveDefaultUnits loads the first repetition and weight unit in seeding
// order. Both reference tables must be seeded; an empty table is a
// deployment-level precondition failure, not a validation error.
func resolveDefaultUnits(ctx context.Context, units repository.UnitRepository) (*domain.RepetitionUnit, *domain.WeightUnit, error) {
	repUnit, err := units.FirstRepetitionUnit(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNoDefaultUnits
		}
		return nil, nil, err
	}
	weightUnit, err := units.FirstWeightUnit(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNoDefaultUnits
		}
		return nil, nil, err
	}
	return repUnit, weightUnit, nil
}
