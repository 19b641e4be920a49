// Package sequence provides gap-free counters stored in PostgreSQL.
//
// Each key owns one row in sys_sequences. Next increments it with an UPSERT,
// so the row lock it takes serializes callers within the surrounding
// transaction and a rollback returns the value.
package sequence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// QuerierFunc resolves the querier for a call, typically the transaction
// stored in ctx or the pool.
type QuerierFunc func(ctx context.Context) Querier

const nextSQL = `
	INSERT INTO sys_sequences (key, current_val)
	VALUES ($1, 1)
	ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
	RETURNING current_val`

// Service hands out sequence values.
type Service struct {
	querier QuerierFunc
}

// New creates a service bound to a fixed querier.
func New(q Querier) *Service {
	return &Service{querier: func(context.Context) Querier { return q }}
}

// NewFromContext creates a service that resolves its querier per call.
func NewFromContext(fn QuerierFunc) *Service {
	return &Service{querier: fn}
}

// Next returns the next value of key, starting at 1.
func (s *Service) Next(ctx context.Context, key string) (int64, error) {
	if s == nil || s.querier == nil {
		return 0, errors.New("sequence service is not initialized")
	}
	if key == "" {
		return 0, errors.New("sequence key is empty")
	}

	var val int64
	if err := s.querier(ctx).QueryRow(ctx, nextSQL, key).Scan(&val); err != nil {
		return 0, fmt.Errorf("next %s: %w", key, err)
	}
	return val, nil
}
