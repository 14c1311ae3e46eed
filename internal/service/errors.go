package service

import (
	"errors"
	"fmt"

	"liftlog/workout-app/internal/repository"
)

// --- Error Classes ---
// Every engine error wraps one of these four, so callers (and the API layer)
// can classify with errors.Is without knowing the entity involved.
var (
	ErrNotFound           = errors.New("not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrValidationFailed   = errors.New("validation failed")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// --- Entity Sentinels ---
var (
	ErrRoutineNotFound    = fmt.Errorf("routine %w", ErrNotFound)
	ErrRoutineDayNotFound = fmt.Errorf("routine day %w", ErrNotFound)
	ErrSessionNotFound    = fmt.Errorf("workout session %w", ErrNotFound)
	ErrSetGroupNotFound   = fmt.Errorf("set group %w", ErrNotFound)
	ErrSetNotFound        = fmt.Errorf("set %w", ErrNotFound)
	ErrExerciseNotFound   = fmt.Errorf("exercise %w", ErrNotFound)

	// ErrNoDefaultUnits means the unit reference tables have not been seeded;
	// sets cannot be created without a default repetition and weight unit.
	ErrNoDefaultUnits = fmt.Errorf("no default units available: %w", ErrPreconditionFailed)
)

// orNotFound maps the repository's not-found error onto the given entity
// sentinel and passes every other error through.
func orNotFound(err, sentinel error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return err
}
