package memory

import (
	"context"
	"slices"
	"sort"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain/article"
)

var _ article.Repository = (*ArticleRepo)(nil)

// ArticleRepo stores articles.
type ArticleRepo struct {
	db *DB
}

// NewArticleRepo creates an article repository.
func NewArticleRepo(db *DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

func (r *ArticleRepo) List(context.Context) ([]article.Article, error) {
	return r.collect(func(article.Article) bool { return true }), nil
}

func (r *ArticleRepo) ListByCategory(_ context.Context, categoryID id.ID) ([]article.Article, error) {
	return r.collect(func(a article.Article) bool { return a.Category == categoryID }), nil
}

func (r *ArticleRepo) collect(keep func(article.Article) bool) []article.Article {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]article.Article, 0)
	for _, a := range r.db.articles {
		if keep(a) {
			out = append(out, cloneArticle(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Position < out[j].Position
	})
	return out
}

func (r *ArticleRepo) Get(_ context.Context, articleID id.ID) (article.Article, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	a, ok := r.db.articles[articleID]
	if !ok {
		return article.Article{}, apperror.NewNotFound("article", articleID)
	}
	return cloneArticle(a), nil
}

func (r *ArticleRepo) GetForUpdate(ctx context.Context, articleID id.ID) (article.Article, error) {
	return r.Get(ctx, articleID)
}

func (r *ArticleRepo) Exists(_ context.Context, articleID id.ID) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	_, ok := r.db.articles[articleID]
	return ok, nil
}

func (r *ArticleRepo) Create(_ context.Context, a article.Article) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.articles[a.ID] = cloneArticle(a)
	return nil
}

func (r *ArticleRepo) Update(_ context.Context, a article.Article) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.articles[a.ID]; !ok {
		return apperror.NewNotFound("article", a.ID)
	}
	r.db.articles[a.ID] = cloneArticle(a)
	return nil
}

func (r *ArticleRepo) SetInventoriedAll(_ context.Context, status article.Inventoried) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for k, a := range r.db.articles {
		a.Inventoried = status
		r.db.articles[k] = a
	}
	return nil
}

func (r *ArticleRepo) FindByGTIN(_ context.Context, gtin string, limit int) ([]id.ID, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var ids []id.ID
	for _, a := range r.db.articles {
		if slices.Contains(a.GTINs, gtin) {
			ids = append(ids, a.ID)
		}
	}
	slices.Sort(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}
