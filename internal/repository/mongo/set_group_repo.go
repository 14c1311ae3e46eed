// internal/repository/mongo/set_group_repo.go
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

const setGroupCollectionName = "set_groups"

// mongoSetGroupRepository implements repository.SetGroupRepository.
type mongoSetGroupRepository struct {
	collection *mongo.Collection
}

// NewMongoSetGroupRepository creates a new SetGroup repository.
func NewMongoSetGroupRepository(db *mongo.Database) repository.SetGroupRepository {
	return &mongoSetGroupRepository{
		collection: db.Collection(setGroupCollectionName),
	}
}

func parentFilter(parent domain.SetGroupParent) bson.M {
	return bson.M{"parent.kind": parent.Kind, "parent.id": parent.ID}
}

// Create inserts a new set group.
func (r *mongoSetGroupRepository) Create(ctx context.Context, group *domain.SetGroup) (primitive.ObjectID, error) {
	if group.UserID == primitive.NilObjectID || group.Parent.ID == primitive.NilObjectID || group.Parent.Kind == "" {
		return primitive.NilObjectID, errors.New("set group requires userId and a parent reference")
	}
	group.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	group.CreatedAt = now
	group.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, group); err != nil {
		return primitive.NilObjectID, err
	}
	return group.ID, nil
}

// GetByID retrieves a single set group by its ID.
func (r *mongoSetGroupRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.SetGroup, error) {
	var group domain.SetGroup
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

// GetByParent retrieves all set groups under a routine day or session,
// sorted ascending by order.
func (r *mongoSetGroupRepository) GetByParent(ctx context.Context, parent domain.SetGroupParent) ([]domain.SetGroup, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.collection.Find(ctx, parentFilter(parent), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []domain.SetGroup
	if err = cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Update rewrites the mutable fields of a set group. Parent and order are
// deliberately untouched; order changes go through UpdateOrder.
func (r *mongoSetGroupRepository) Update(ctx context.Context, group *domain.SetGroup) error {
	if group.ID == primitive.NilObjectID {
		return errors.New("set group ID is required for update")
	}
	update := bson.M{
		"$set": bson.M{
			"type":      group.Type,
			"comment":   group.Comment,
			"updatedAt": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": group.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateOrder sets the order field of one set group.
func (r *mongoSetGroupRepository) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error {
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

// Delete removes a single set group row.
func (r *mongoSetGroupRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByParent removes every set group under a routine day or session.
// Deleting zero rows is not an error; an empty parent is a valid state.
func (r *mongoSetGroupRepository) DeleteByParent(ctx context.Context, parent domain.SetGroupParent) error {
	_, err := r.collection.DeleteMany(ctx, parentFilter(parent))
	return err
}

// EnsureSetGroupIndexes creates necessary indexes. Call during startup.
func EnsureSetGroupIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Sibling listing: all groups under one parent, sorted by order.
			Keys:    bson.D{{Key: "parent.kind", Value: 1}, {Key: "parent.id", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
