// internal/repository/mongo/tx.go
package mongo

import (
	"context"

	"liftlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// mongoTxManager implements repository.TxManager on top of MongoDB sessions.
// Requires a replica set (standalone mongod does not support transactions).
type mongoTxManager struct {
	client *mongo.Client
}

// NewMongoTxManager creates a TxManager backed by the given client.
func NewMongoTxManager(client *mongo.Client) repository.TxManager {
	return &mongoTxManager{client: client}
}

// WithinTransaction runs fn inside one multi-document transaction. The
// session context it passes to fn must be used for every collection
// operation, otherwise the writes escape the transaction.
func (m *mongoTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	}, txOpts)
	return err
}
