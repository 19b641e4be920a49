package inventory_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain/lot"
	"inventory/internal/infrastructure/storage/postgres"
)

const tableLots = "lots"

var lotColumns = postgres.Columns[lot.Lot]()

var _ lot.Repository = (*LotRepo)(nil)

// LotRepo stores lots.
type LotRepo struct {
	base
}

// NewLotRepo creates a lot repository.
func NewLotRepo(txm *postgres.TxManager) *LotRepo {
	return &LotRepo{base{txm: txm}}
}

func (r *LotRepo) selectQuery() squirrel.SelectBuilder {
	return r.Builder().Select(lotColumns...).From(tableLots)
}

func (r *LotRepo) ListByArticles(ctx context.Context, articles []id.ID) ([]lot.Lot, error) {
	out := make([]lot.Lot, 0)
	if len(articles) == 0 {
		return out, nil
	}
	q := r.selectQuery().Where(squirrel.Eq{"article": articles}).OrderBy("article", colPosition)
	if err := r.selectAll(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	return out, nil
}

func (r *LotRepo) Get(ctx context.Context, lotID id.ID) (lot.Lot, error) {
	var l lot.Lot
	q := r.selectQuery().Where(squirrel.Eq{"id": lotID})
	if err := r.get(ctx, &l, q, apperror.NewNotFound("lot", lotID)); err != nil {
		return l, fmt.Errorf("get lot: %w", err)
	}
	return l, nil
}

func (r *LotRepo) GetForUpdate(ctx context.Context, lotID id.ID) (lot.Lot, error) {
	var l lot.Lot
	q := r.selectQuery().Where(squirrel.Eq{"id": lotID}).Suffix("FOR UPDATE")
	if err := r.get(ctx, &l, q, apperror.NewNotFound("lot", lotID)); err != nil {
		return l, fmt.Errorf("lock lot: %w", err)
	}
	return l, nil
}

func (r *LotRepo) insertQuery(lots []lot.Lot) squirrel.InsertBuilder {
	q := r.Builder().Insert(tableLots).Columns(lotColumns...)
	for _, l := range lots {
		q = q.Values(l.ID, l.Article, l.BestBefore, l.Stock, l.Position, l.Timestamp)
	}
	return q
}

func (r *LotRepo) Create(ctx context.Context, lots ...lot.Lot) error {
	if len(lots) == 0 {
		return nil
	}
	if _, err := r.exec(ctx, r.insertQuery(lots)); err != nil {
		return fmt.Errorf("insert lots: %w", err)
	}
	return nil
}

func (r *LotRepo) Update(ctx context.Context, l lot.Lot) error {
	q := r.Builder().Update(tableLots).
		Set("best_before", l.BestBefore).
		Set("stock", l.Stock).
		Set(colTimestamp, l.Timestamp).
		Where(squirrel.Eq{"id": l.ID})

	n, err := r.exec(ctx, q)
	if err != nil {
		return fmt.Errorf("update lot: %w", err)
	}
	if n == 0 {
		return apperror.NewNotFound("lot", l.ID)
	}
	return nil
}

func (r *LotRepo) adjustStockQuery(lotID id.ID, delta, timestamp int64) squirrel.UpdateBuilder {
	return r.Builder().Update(tableLots).
		Set("stock", squirrel.Expr("stock + ?", delta)).
		Set(colTimestamp, timestamp).
		Where(squirrel.Eq{"id": lotID}).
		Suffix("RETURNING " + strings.Join(lotColumns, ", "))
}

func (r *LotRepo) AdjustStock(ctx context.Context, lotID id.ID, delta int64, timestamp int64) (lot.Lot, error) {
	var l lot.Lot
	q := r.adjustStockQuery(lotID, delta, timestamp)
	if err := r.get(ctx, &l, q, apperror.NewNotFound("lot", lotID)); err != nil {
		return l, fmt.Errorf("adjust stock: %w", err)
	}
	return l, nil
}

func (r *LotRepo) DeleteByArticle(ctx context.Context, articleID id.ID) error {
	if _, err := r.exec(ctx, r.Builder().Delete(tableLots).Where(squirrel.Eq{"article": articleID})); err != nil {
		return fmt.Errorf("delete lots of article %d: %w", articleID, err)
	}
	return nil
}
