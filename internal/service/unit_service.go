package service

import (
	"context"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"
)

// UnitService exposes the seeded unit reference tables to clients so pickers
// can be populated. Read-only; the tables only change through seeding.
type UnitService interface {
	ListRepetitionUnits(ctx context.Context) ([]domain.RepetitionUnit, error)
	ListWeightUnits(ctx context.Context) ([]domain.WeightUnit, error)
}

type unitService struct {
	units repository.UnitRepository
}

// NewUnitService creates a new instance of unitService.
func NewUnitService(units repository.UnitRepository) UnitService {
	return &unitService{units: units}
}

func (s *unitService) ListRepetitionUnits(ctx context.Context) ([]domain.RepetitionUnit, error) {
	return s.units.ListRepetitionUnits(ctx)
}

func (s *unitService) ListWeightUnits(ctx context.Context) ([]domain.WeightUnit, error) {
	return s.units.ListWeightUnits(ctx)
}
