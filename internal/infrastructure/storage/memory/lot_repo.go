package memory

import (
	"context"
	"slices"
	"sort"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain/lot"
)

var _ lot.Repository = (*LotRepo)(nil)

// LotRepo stores lots.
type LotRepo struct {
	db *DB
}

// NewLotRepo creates a lot repository.
func NewLotRepo(db *DB) *LotRepo {
	return &LotRepo{db: db}
}

func (r *LotRepo) ListByArticles(_ context.Context, articles []id.ID) ([]lot.Lot, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]lot.Lot, 0)
	for _, l := range r.db.lots {
		if slices.Contains(articles, l.Article) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Article != out[j].Article {
			return out[i].Article < out[j].Article
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (r *LotRepo) Get(_ context.Context, lotID id.ID) (lot.Lot, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	l, ok := r.db.lots[lotID]
	if !ok {
		return lot.Lot{}, apperror.NewNotFound("lot", lotID)
	}
	return l, nil
}

func (r *LotRepo) GetForUpdate(ctx context.Context, lotID id.ID) (lot.Lot, error) {
	return r.Get(ctx, lotID)
}

func (r *LotRepo) Create(_ context.Context, lots ...lot.Lot) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, l := range lots {
		r.db.lots[l.ID] = l
	}
	return nil
}

func (r *LotRepo) Update(_ context.Context, l lot.Lot) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.lots[l.ID]
	if !ok {
		return apperror.NewNotFound("lot", l.ID)
	}
	stored.BestBefore = l.BestBefore
	stored.Stock = l.Stock
	stored.Timestamp = l.Timestamp
	r.db.lots[l.ID] = stored
	return nil
}

func (r *LotRepo) AdjustStock(_ context.Context, lotID id.ID, delta int64, timestamp int64) (lot.Lot, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	l, ok := r.db.lots[lotID]
	if !ok {
		return lot.Lot{}, apperror.NewNotFound("lot", lotID)
	}
	l.Stock += delta
	l.Timestamp = timestamp
	r.db.lots[lotID] = l
	return l, nil
}

func (r *LotRepo) DeleteByArticle(_ context.Context, articleID id.ID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for k, l := range r.db.lots {
		if l.Article == articleID {
			delete(r.db.lots, k)
		}
	}
	return nil
}
