// internal/repository/mongo/routine_day_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const routineDayCollectionName = "routine_days"

// mongoRoutineDayRepository implements repository.RoutineDayRepository.
type mongoRoutineDayRepository struct {
	collection *mongo.Collection
}

// NewMongoRoutineDayRepository creates a new RoutineDay repository.
func NewMongoRoutineDayRepository(db *mongo.Database) repository.RoutineDayRepository {
	return &mongoRoutineDayRepository{
		collection: db.Collection(routineDayCollectionName),
	}
}

// Create inserts a new routine day template.
func (r *mongoRoutineDayRepository) Create(ctx context.Context, day *domain.RoutineDay) (primitive.ObjectID, error) {
	if day.RoutineID == primitive.NilObjectID || day.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("routine day requires routineId and userId")
	}
	day.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	day.CreatedAt = now
	day.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, day); err != nil {
		return primitive.NilObjectID, err
	}
	return day.ID, nil
}

// GetByID retrieves a single routine day by its ID.
func (r *mongoRoutineDayRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RoutineDay, error) {
	var day domain.RoutineDay
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// GetByRoutineID retrieves all days of a routine in creation order.
func (r *mongoRoutineDayRepository) GetByRoutineID(ctx context.Context, routineID primitive.ObjectID) ([]domain.RoutineDay, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"routineId": routineID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var days []domain.RoutineDay
	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// Update rewrites the mutable fields of a routine day.
func (r *mongoRoutineDayRepository) Update(ctx context.Context, day *domain.RoutineDay) error {
	if day.ID == primitive.NilObjectID {
		return errors.New("routine day ID is required for update")
	}
	update := bson.M{
		"$set": bson.M{
			"description": day.Description,
			"weekdays":    day.Weekdays,
			"updatedAt":   time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": day.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a routine day row. Cascading to set groups is the
// service's job.
func (r *mongoRoutineDayRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureRoutineDayIndexes creates necessary indexes. Call during startup.
func EnsureRoutineDayIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "routineId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
