package inventory_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain/article"
	"inventory/internal/infrastructure/storage/postgres"
)

const tableArticles = "articles"

var articleColumns = postgres.Columns[article.Article]()

var _ article.Repository = (*ArticleRepo)(nil)

// ArticleRepo stores articles.
type ArticleRepo struct {
	base
}

// NewArticleRepo creates an article repository.
func NewArticleRepo(txm *postgres.TxManager) *ArticleRepo {
	return &ArticleRepo{base{txm: txm}}
}

func (r *ArticleRepo) selectQuery() squirrel.SelectBuilder {
	return r.Builder().Select(articleColumns...).From(tableArticles)
}

func (r *ArticleRepo) List(ctx context.Context) ([]article.Article, error) {
	out := make([]article.Article, 0)
	if err := r.selectAll(ctx, &out, r.selectQuery().OrderBy("category", colPosition)); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return out, nil
}

func (r *ArticleRepo) ListByCategory(ctx context.Context, categoryID id.ID) ([]article.Article, error) {
	out := make([]article.Article, 0)
	q := r.selectQuery().Where(squirrel.Eq{"category": categoryID}).OrderBy(colPosition)
	if err := r.selectAll(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list articles of category %d: %w", categoryID, err)
	}
	return out, nil
}

func (r *ArticleRepo) Get(ctx context.Context, articleID id.ID) (article.Article, error) {
	var a article.Article
	q := r.selectQuery().Where(squirrel.Eq{"id": articleID})
	if err := r.get(ctx, &a, q, apperror.NewNotFound("article", articleID)); err != nil {
		return a, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

func (r *ArticleRepo) GetForUpdate(ctx context.Context, articleID id.ID) (article.Article, error) {
	var a article.Article
	q := r.selectQuery().Where(squirrel.Eq{"id": articleID}).Suffix("FOR UPDATE")
	if err := r.get(ctx, &a, q, apperror.NewNotFound("article", articleID)); err != nil {
		return a, fmt.Errorf("lock article: %w", err)
	}
	return a, nil
}

func (r *ArticleRepo) Exists(ctx context.Context, articleID id.ID) (bool, error) {
	return r.exists(ctx, tableArticles, squirrel.Eq{"id": articleID})
}

func (r *ArticleRepo) Create(ctx context.Context, a article.Article) error {
	if _, err := r.exec(ctx, r.Builder().Insert(tableArticles).SetMap(postgres.Values(a))); err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *ArticleRepo) Update(ctx context.Context, a article.Article) error {
	q := r.Builder().Update(tableArticles).
		SetMap(postgres.Values(a, "id")).
		Where(squirrel.Eq{"id": a.ID})

	n, err := r.exec(ctx, q)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if n == 0 {
		return apperror.NewNotFound("article", a.ID)
	}
	return nil
}

func (r *ArticleRepo) SetInventoriedAll(ctx context.Context, status article.Inventoried) error {
	if _, err := r.exec(ctx, r.Builder().Update(tableArticles).Set("inventoried", int(status))); err != nil {
		return fmt.Errorf("set inventoried: %w", err)
	}
	return nil
}

func (r *ArticleRepo) findByGTINQuery(gtin string, limit int) squirrel.SelectBuilder {
	return r.Builder().Select("id").From(tableArticles).
		Where(squirrel.Expr("gtins @> ARRAY[?]::text[]", gtin)).
		OrderBy("id").
		Limit(uint64(limit))
}

func (r *ArticleRepo) FindByGTIN(ctx context.Context, gtin string, limit int) ([]id.ID, error) {
	ids := make([]id.ID, 0, limit)
	if err := r.selectAll(ctx, &ids, r.findByGTINQuery(gtin, limit)); err != nil {
		return nil, fmt.Errorf("find articles by gtin: %w", err)
	}
	return ids, nil
}
