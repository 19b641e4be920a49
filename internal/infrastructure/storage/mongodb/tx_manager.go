package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"inventory/internal/core/tx"
)

var tracer = otel.Tracer("inventory/mongodb")

// Compile-time check that TxManager implements tx.Manager interface.
var _ tx.Manager = (*TxManager)(nil)

// TxManager runs multi-document transactions. The session travels in the
// context, where the driver picks it up for every operation. With
// transactions disabled (standalone servers) fn runs directly.
type TxManager struct {
	db *DB
}

// NewTxManager creates a transaction manager.
func NewTxManager(db *DB) *TxManager {
	return &TxManager{db: db}
}

// RunInTransaction executes fn within a transaction.
// Nested calls reuse the existing session from context.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !m.db.transactions || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	ctx, span := tracer.Start(ctx, "transaction",
		trace.WithAttributes(attribute.String("db.system", "mongodb")))
	defer span.End()

	sess, err := m.db.client.StartSession()
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(context.Background())

	// WithTransaction retries fn on transient errors, so fn must not keep
	// state between attempts.
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil {
		span.RecordError(err)
	}
	return err
}
