// Package storage assembles the repositories of the configured backend.
package storage

import (
	"context"
	"fmt"

	"inventory/internal/config"
	"inventory/internal/core/id"
	"inventory/internal/core/tx"
	"inventory/internal/domain/article"
	"inventory/internal/domain/auth"
	"inventory/internal/domain/category"
	"inventory/internal/domain/lot"
	"inventory/internal/domain/position"
	"inventory/internal/domain/stocktaking"
	"inventory/internal/infrastructure/storage/memory"
	"inventory/internal/infrastructure/storage/mongodb"
	"inventory/internal/infrastructure/storage/postgres"
	"inventory/internal/infrastructure/storage/postgres/inventory_repo"
	"inventory/pkg/logger"
)

// Backend is one storage driver's implementation of every repository.
type Backend struct {
	Driver string

	Tx         tx.Manager
	IDs        id.Allocator
	Positions  position.Store
	Categories category.Repository
	Articles   article.Repository
	Lots       lot.Repository
	Sessions   stocktaking.Repository
	Tokens     auth.TokenRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks the backend is reachable.
func (b *Backend) Ping(ctx context.Context) error {
	return b.ping(ctx)
}

// Close releases connections.
func (b *Backend) Close(ctx context.Context) error {
	if b.close == nil {
		return nil
	}
	return b.close(ctx)
}

// Open connects the backend selected by cfg.Storage.Driver. The postgres
// schema is migrated first when database.auto_migrate is set.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.Database)
	case config.DriverMongoDB:
		return openMongo(ctx, cfg.Database)
	case config.DriverMemory:
		return NewMemory(memory.New()), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (*Backend, error) {
	if cfg.AutoMigrate {
		if err := migrateUp(cfg.URI); err != nil {
			return nil, err
		}
	}

	poolCfg := postgres.DefaultPoolConfig(cfg.URI)
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	txm := postgres.NewTxManager(pool)
	return &Backend{
		Driver:     config.DriverPostgres,
		Tx:         txm,
		IDs:        postgres.NewIDAllocator(txm),
		Positions:  inventory_repo.NewPositionStore(txm),
		Categories: inventory_repo.NewCategoryRepo(txm),
		Articles:   inventory_repo.NewArticleRepo(txm),
		Lots:       inventory_repo.NewLotRepo(txm),
		Sessions:   inventory_repo.NewSessionRepo(txm),
		Tokens:     inventory_repo.NewTokenRepo(txm),
		ping:       pool.Ping,
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}, nil
}

func migrateUp(dsn string) error {
	m, err := postgres.NewMigrator(dsn, logger.Default())
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

func openMongo(ctx context.Context, cfg config.DatabaseConfig) (*Backend, error) {
	db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:          cfg.URI,
		Database:     cfg.Name,
		Transactions: cfg.Transactions,
	})
	if err != nil {
		return nil, fmt.Errorf("open mongodb: %w", err)
	}

	return &Backend{
		Driver:     config.DriverMongoDB,
		Tx:         mongodb.NewTxManager(db),
		IDs:        mongodb.NewSequence(db),
		Positions:  mongodb.NewPositionStore(db),
		Categories: mongodb.NewCategoryRepo(db),
		Articles:   mongodb.NewArticleRepo(db),
		Lots:       mongodb.NewLotRepo(db),
		Sessions:   mongodb.NewSessionRepo(db),
		Tokens:     mongodb.NewTokenRepo(db),
		ping:       db.Ping,
		close:      db.Close,
	}, nil
}

// NewMemory wraps an in-process database.
func NewMemory(db *memory.DB) *Backend {
	return &Backend{
		Driver:     config.DriverMemory,
		Tx:         memory.NewTxManager(db),
		IDs:        memory.NewSequence(db),
		Positions:  memory.NewPositionStore(db),
		Categories: memory.NewCategoryRepo(db),
		Articles:   memory.NewArticleRepo(db),
		Lots:       memory.NewLotRepo(db),
		Sessions:   memory.NewSessionRepo(db),
		Tokens:     memory.NewTokenRepo(db),
		ping:       db.Ping,
	}
}
