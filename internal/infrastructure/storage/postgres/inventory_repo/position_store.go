package inventory_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"inventory/internal/core/id"
	"inventory/internal/domain/position"
	"inventory/internal/infrastructure/storage/postgres"
)

// lockableKinds are the tables with a position column.
var lockableKinds = map[id.Kind]bool{
	id.KindCategory: true,
	id.KindArticle:  true,
	id.KindLot:      true,
}

var _ position.Store = (*PositionStore)(nil)

// PositionStore implements position.Store on the categories, articles and
// lots tables. The table name equals the kind.
type PositionStore struct {
	base
}

// NewPositionStore creates a position store.
func NewPositionStore(txm *postgres.TxManager) *PositionStore {
	return &PositionStore{base{txm: txm}}
}

func scopeFilter(scope position.Scope) squirrel.Sqlizer {
	if scope.IsGlobal() {
		return squirrel.Expr("TRUE")
	}
	return squirrel.Eq{scope.ParentField: scope.ParentID}
}

// lockKey names the advisory lock of scope. The full 64-bit parent id is
// part of the name, which Postgres hashes to the bigint lock key.
func lockKey(scope position.Scope) (string, error) {
	if !lockableKinds[scope.Kind] {
		return "", fmt.Errorf("unknown kind %q", scope.Kind)
	}
	return "position:" + scope.String(), nil
}

// LockScope takes a transaction scoped advisory lock on scope.
func (s *PositionStore) LockScope(ctx context.Context, scope position.Scope) error {
	key, err := lockKey(scope)
	if err != nil {
		return err
	}
	if _, err := s.txm.GetQuerier(ctx).Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", key); err != nil {
		return fmt.Errorf("lock scope %s: %w", scope, err)
	}
	return nil
}

func (s *PositionStore) maxPositionQuery(scope position.Scope) squirrel.SelectBuilder {
	return s.Builder().
		Select("COALESCE(MAX(" + colPosition + "), 0)").
		From(string(scope.Kind)).
		Where(scopeFilter(scope))
}

func (s *PositionStore) MaxPosition(ctx context.Context, scope position.Scope) (int64, error) {
	sql, args, err := s.maxPositionQuery(scope).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	var max int64
	if err := s.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&max); err != nil {
		return 0, fmt.Errorf("max position of %s: %w", scope, err)
	}
	return max, nil
}

func (s *PositionStore) neighborQuery(scope position.Scope, pos int64, dir position.Direction) squirrel.SelectBuilder {
	q := s.Builder().Select("id", colPosition).From(string(scope.Kind)).Where(scopeFilter(scope))
	if dir == position.Up {
		q = q.Where(squirrel.Lt{colPosition: pos}).OrderBy(colPosition + " DESC")
	} else {
		q = q.Where(squirrel.Gt{colPosition: pos}).OrderBy(colPosition + " ASC")
	}
	return q.Limit(1).Suffix("FOR UPDATE")
}

func (s *PositionStore) Neighbor(ctx context.Context, scope position.Scope, pos int64, dir position.Direction) (position.Slot, bool, error) {
	var slot position.Slot
	if err := s.get(ctx, &slot, s.neighborQuery(scope, pos, dir), nil); err != nil {
		if isNoRows(err) {
			return position.Slot{}, false, nil
		}
		return position.Slot{}, false, fmt.Errorf("neighbor in %s: %w", scope, err)
	}
	return slot, true, nil
}

func (s *PositionStore) SetPosition(ctx context.Context, kind id.Kind, recordID id.ID, pos int64, timestamp *int64) error {
	q := s.Builder().Update(string(kind)).Set(colPosition, pos).Where(squirrel.Eq{"id": recordID})
	if timestamp != nil {
		q = q.Set(colTimestamp, *timestamp)
	}
	n, err := s.exec(ctx, q)
	if err != nil {
		return fmt.Errorf("set position of %s %d: %w", kind, recordID, err)
	}
	if n == 0 {
		return fmt.Errorf("set position: %s %d does not exist", kind, recordID)
	}
	return nil
}

func (s *PositionStore) closeGapQuery(scope position.Scope, pos int64) squirrel.UpdateBuilder {
	return s.Builder().Update(string(scope.Kind)).
		Set(colPosition, squirrel.Expr(colPosition+" - 1")).
		Where(scopeFilter(scope)).
		Where(squirrel.Gt{colPosition: pos})
}

func (s *PositionStore) CloseGap(ctx context.Context, scope position.Scope, pos int64) error {
	if _, err := s.exec(ctx, s.closeGapQuery(scope, pos)); err != nil {
		return fmt.Errorf("close gap in %s: %w", scope, err)
	}
	return nil
}
