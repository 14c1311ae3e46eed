// internal/repository/mongo/set_repo.go
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

const setCollectionName = "sets"

// mongoSetRepository implements repository.SetRepository.
type mongoSetRepository struct {
	collection *mongo.Collection
}

// NewMongoSetRepository creates a new Set repository.
func NewMongoSetRepository(db *mongo.Database) repository.SetRepository {
	return &mongoSetRepository{
		collection: db.Collection(setCollectionName),
	}
}

// Create inserts a new set.
func (r *mongoSetRepository) Create(ctx context.Context, set *domain.Set) (primitive.ObjectID, error) {
	if set.UserID == primitive.NilObjectID || set.SetGroupID == primitive.NilObjectID || set.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("set requires userId, setGroupId, and exerciseId")
	}
	set.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	set.CreatedAt = now
	set.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, set); err != nil {
		return primitive.NilObjectID, err
	}
	return set.ID, nil
}

// GetByID retrieves a single set by its ID.
func (r *mongoSetRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Set, error) {
	var set domain.Set
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &set, nil
}

// GetByGroupID retrieves all sets of a group, sorted ascending by order.
func (r *mongoSetRepository) GetByGroupID(ctx context.Context, groupID primitive.ObjectID) ([]domain.Set, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"setGroupId": groupID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sets []domain.Set
	if err = cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

// CountByGroupID counts the remaining sets of a group.
func (r *mongoSetRepository) CountByGroupID(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"setGroupId": groupID})
}

// Update rewrites the mutable fields of a set. SetGroupID is deliberately not
// written; a set never moves between groups. Order changes go through
// UpdateOrder.
func (r *mongoSetRepository) Update(ctx context.Context, set *domain.Set) error {
	if set.ID == primitive.NilObjectID {
		return errors.New("set ID is required for update")
	}
	update := bson.M{
		"$set": bson.M{
			"exerciseId":       set.ExerciseID,
			"type":             set.Type,
			"reps":             set.Reps,
			"repetitionUnitId": set.RepetitionUnitID,
			"weight":           set.Weight,
			"weightUnitId":     set.WeightUnitID,
			"restTime":         set.RestTime,
			"completed":        set.Completed,
			"updatedAt":        time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": set.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateOrder sets the order field of one set.
func (r *mongoSetRepository) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error {
	update := bson.M{
		"$set": bson.M{
			"order":     order,
			"updatedAt": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a single set row.
func (r *mongoSetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByGroupID removes every set of a group.
func (r *mongoSetRepository) DeleteByGroupID(ctx context.Context, groupID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"setGroupId": groupID})
	return err
}

// EnsureSetIndexes creates necessary indexes. Call during startup.
func EnsureSetIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Sibling listing: all sets of one group, sorted by order.
			Keys:    bson.D{{Key: "setGroupId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
