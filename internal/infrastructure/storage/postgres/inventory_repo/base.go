// Package inventory_repo provides PostgreSQL implementations of the
// inventory repositories.
package inventory_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"inventory/internal/core/apperror"
	"inventory/internal/infrastructure/storage/postgres"
)

// Quoted column names that are also SQL keywords.
var (
	colPosition  = postgres.Ident("position")
	colTimestamp = postgres.Ident("timestamp")
)

// base holds what every repository needs.
type base struct {
	txm *postgres.TxManager
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (b base) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// get scans a single row into dst. notFound is returned when no row matches.
func (b base) get(ctx context.Context, dst any, q squirrel.Sqlizer, notFound *apperror.AppError) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Get(ctx, b.txm.GetQuerier(ctx), dst, sql, args...); err != nil {
		if pgxscan.NotFound(err) && notFound != nil {
			return notFound
		}
		return err
	}
	return nil
}

// selectAll scans all rows into dst, a pointer to a slice.
func (b base) selectAll(ctx context.Context, dst any, q squirrel.Sqlizer) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return pgxscan.Select(ctx, b.txm.GetQuerier(ctx), dst, sql, args...)
}

// exec runs a statement and returns the number of affected rows.
func (b base) exec(ctx context.Context, q squirrel.Sqlizer) (int64, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build statement: %w", err)
	}
	tag, err := b.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (b base) existsQuery(table string, where squirrel.Sqlizer) squirrel.SelectBuilder {
	return b.Builder().Select("1").Prefix("SELECT EXISTS (").From(table).Where(where).Suffix(")")
}

// exists reports whether a row of table matches where.
func (b base) exists(ctx context.Context, table string, where squirrel.Sqlizer) (bool, error) {
	sql, args, err := b.existsQuery(table, where).ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}
	var ok bool
	if err := b.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func isNoRows(err error) bool {
	return pgxscan.NotFound(err)
}
