package inventory_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"inventory/internal/core/apperror"
	"inventory/internal/domain/stocktaking"
	"inventory/internal/infrastructure/storage/postgres"
)

const (
	tableInventories = "inventories"

	// pgUniqueViolation is the SQLSTATE of a unique constraint failure.
	pgUniqueViolation = "23505"
)

var (
	colStart = postgres.Ident("start")
	colStop  = postgres.Ident("stop")
)

var _ stocktaking.Repository = (*SessionRepo)(nil)

// SessionRepo stores stocktaking sessions in the inventories table.
type SessionRepo struct {
	base
}

// NewSessionRepo creates a session repository.
func NewSessionRepo(txm *postgres.TxManager) *SessionRepo {
	return &SessionRepo{base{txm: txm}}
}

func (r *SessionRepo) currentQuery() squirrel.SelectBuilder {
	return r.Builder().Select("id", colStart, colStop).
		From(tableInventories).
		Where(colStop + " IS NULL").
		Limit(1)
}

func (r *SessionRepo) Current(ctx context.Context) (*stocktaking.Session, error) {
	var s stocktaking.Session
	if err := r.get(ctx, &s, r.currentQuery(), nil); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("current session: %w", err)
	}
	return &s, nil
}

func (r *SessionRepo) Open(ctx context.Context, start time.Time) error {
	q := r.Builder().Insert(tableInventories).Columns(colStart).Values(start)
	if _, err := r.exec(ctx, q); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.NewConflict("inventory is already active")
		}
		return fmt.Errorf("open session: %w", err)
	}
	return nil
}

func (r *SessionRepo) Close(ctx context.Context, stop time.Time) error {
	q := r.Builder().Update(tableInventories).Set(colStop, stop).Where(colStop + " IS NULL")
	n, err := r.exec(ctx, q)
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	if n == 0 {
		return apperror.NewConflict("inventory is not active")
	}
	return nil
}
