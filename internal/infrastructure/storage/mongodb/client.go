// Package mongodb provides a MongoDB storage backend. Documents are keyed by
// the numeric identifiers the service allocates, so the data model is the
// same as on PostgreSQL.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"inventory/pkg/logger"
)

// Collection names.
const (
	collCategories  = "categories"
	collArticles    = "articles"
	collLots        = "lots"
	collInventories = "inventories"
	collTokens      = "tokens"
	collCounters    = "counters"
	collScopeLocks  = "scope_locks"
)

// Config configures the connection.
type Config struct {
	URI          string
	Database     string
	Transactions bool
}

// DB wraps a connected client and the selected database.
type DB struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
}

// Connect opens a client, verifies it with a ping and ensures indexes.
func Connect(ctx context.Context, cfg Config) (*DB, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetRegistry(NewRegistry()).
		SetAppName("inventory")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}

	db := &DB{
		client:       client,
		db:           client.Database(cfg.Database),
		transactions: cfg.Transactions,
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info(ctx, "connected to mongodb", "database", cfg.Database, "transactions", cfg.Transactions)
	return db, nil
}

// Ping checks the server is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

func (d *DB) collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// EnsureIndexes creates the indexes the repositories rely on. Positions are
// not unique here: swaps pass through a duplicate state within a transaction.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		collCategories: {
			{Keys: bson.D{{Key: "position", Value: 1}}},
		},
		collArticles: {
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "position", Value: 1}}},
			{Keys: bson.D{{Key: "gtins", Value: 1}}},
		},
		collLots: {
			{Keys: bson.D{{Key: "article", Value: 1}, {Key: "position", Value: 1}}},
		},
		collInventories: {
			{
				Keys: bson.D{{Key: "open", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"open": bson.M{"$exists": true}}),
			},
		},
		collTokens: {
			{Keys: bson.D{{Key: "token", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := d.collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
