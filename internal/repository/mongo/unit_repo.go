// internal/repository/mongo/unit_repo.go
package mongo

import (
	"context"
	"errors"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	repetitionUnitCollectionName = "repetition_units"
	weightUnitCollectionName     = "weight_units"
)

// mongoUnitRepository implements repository.UnitRepository over the two unit
// reference collections.
type mongoUnitRepository struct {
	repetitionUnits *mongo.Collection
	weightUnits     *mongo.Collection
}

// NewMongoUnitRepository creates a new unit reference-data repository.
func NewMongoUnitRepository(db *mongo.Database) repository.UnitRepository {
	return &mongoUnitRepository{
		repetitionUnits: db.Collection(repetitionUnitCollectionName),
		weightUnits:     db.Collection(weightUnitCollectionName),
	}
}

// CreateRepetitionUnit inserts a repetition unit row.
func (r *mongoUnitRepository) CreateRepetitionUnit(ctx context.Context, unit *domain.RepetitionUnit) (primitive.ObjectID, error) {
	if unit.Name == "" {
		return primitive.NilObjectID, errors.New("repetition unit name is required")
	}
	unit.ID = primitive.NewObjectID()
	if _, err := r.repetitionUnits.InsertOne(ctx, unit); err != nil {
		return primitive.NilObjectID, err
	}
	return unit.ID, nil
}

// CreateWeightUnit inserts a weight unit row.
func (r *mongoUnitRepository) CreateWeightUnit(ctx context.Context, unit *domain.WeightUnit) (primitive.ObjectID, error) {
	if unit.Name == "" {
		return primitive.NilObjectID, errors.New("weight unit name is required")
	}
	unit.ID = primitive.NewObjectID()
	if _, err := r.weightUnits.InsertOne(ctx, unit); err != nil {
		return primitive.NilObjectID, err
	}
	return unit.ID, nil
}

// FirstRepetitionUnit returns the repetition unit with the lowest seeding
// order, i.e. the system default.
func (r *mongoUnitRepository) FirstRepetitionUnit(ctx context.Context) (*domain.RepetitionUnit, error) {
	var unit domain.RepetitionUnit
	opts := options.FindOne().SetSort(bson.D{{Key: "seq", Value: 1}})
	err := r.repetitionUnits.FindOne(ctx, bson.M{}, opts).Decode(&unit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FirstWeightUnit returns the weight unit with the lowest seeding order.
func (r *mongoUnitRepository) FirstWeightUnit(ctx context.Context) (*domain.WeightUnit, error) {
	var unit domain.WeightUnit
	opts := options.FindOne().SetSort(bson.D{{Key: "seq", Value: 1}})
	err := r.weightUnits.FindOne(ctx, bson.M{}, opts).Decode(&unit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// ListRepetitionUnits returns all repetition units in seeding order.
func (r *mongoUnitRepository) ListRepetitionUnits(ctx context.Context) ([]domain.RepetitionUnit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cursor, err := r.repetitionUnits.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var units []domain.RepetitionUnit
	if err = cursor.All(ctx, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// ListWeightUnits returns all weight units in seeding order.
func (r *mongoUnitRepository) ListWeightUnits(ctx context.Context) ([]domain.WeightUnit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cursor, err := r.weightUnits.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var units []domain.WeightUnit
	if err = cursor.All(ctx, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// SeedUnits inserts the default unit rows if the collections are empty.
// Call during startup; new sets cannot be created until units exist.
func SeedUnits(ctx context.Context, db *mongo.Database) error {
	repo := NewMongoUnitRepository(db).(*mongoUnitRepository)

	count, err := repo.repetitionUnits.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count == 0 {
		for i, name := range []string{"Repetitions", "Seconds", "Minutes", "Until Failure"} {
			if _, err := repo.CreateRepetitionUnit(ctx, &domain.RepetitionUnit{Name: name, Seq: i}); err != nil {
				return err
			}
		}
	}

	count, err = repo.weightUnits.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count == 0 {
		for i, name := range []string{"kg", "lb", "Body Weight", "Plates"} {
			if _, err := repo.CreateWeightUnit(ctx, &domain.WeightUnit{Name: name, Seq: i}); err != nil {
				return err
			}
		}
	}
	return nil
}
