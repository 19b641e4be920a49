package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain/article"
)

var _ article.Repository = (*ArticleRepo)(nil)

// ArticleRepo stores articles. Lots live in their own collection.
type ArticleRepo struct {
	db *DB
}

// NewArticleRepo creates an article repository.
func NewArticleRepo(db *DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

func (r *ArticleRepo) List(ctx context.Context) ([]article.Article, error) {
	out, err := findAll[article.Article](ctx, r.db.collection(collArticles), bson.M{},
		options.Find().SetSort(ascending("category", "position")))
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return out, nil
}

func (r *ArticleRepo) ListByCategory(ctx context.Context, categoryID id.ID) ([]article.Article, error) {
	out, err := findAll[article.Article](ctx, r.db.collection(collArticles), bson.M{"category": categoryID},
		options.Find().SetSort(ascending("position")))
	if err != nil {
		return nil, fmt.Errorf("list articles of category %d: %w", categoryID, err)
	}
	return out, nil
}

func (r *ArticleRepo) Get(ctx context.Context, articleID id.ID) (article.Article, error) {
	var a article.Article
	err := findOne(ctx, r.db.collection(collArticles), bson.M{"_id": articleID}, &a,
		apperror.NewNotFound("article", articleID))
	if err != nil {
		return a, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// GetForUpdate reads like Get; see CategoryRepo.GetForUpdate.
func (r *ArticleRepo) GetForUpdate(ctx context.Context, articleID id.ID) (article.Article, error) {
	return r.Get(ctx, articleID)
}

func (r *ArticleRepo) Exists(ctx context.Context, articleID id.ID) (bool, error) {
	return exists(ctx, r.db.collection(collArticles), bson.M{"_id": articleID})
}

func (r *ArticleRepo) Create(ctx context.Context, a article.Article) error {
	if _, err := r.db.collection(collArticles).InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *ArticleRepo) Update(ctx context.Context, a article.Article) error {
	res, err := r.db.collection(collArticles).ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound("article", a.ID)
	}
	return nil
}

func (r *ArticleRepo) SetInventoriedAll(ctx context.Context, status article.Inventoried) error {
	_, err := r.db.collection(collArticles).UpdateMany(ctx, bson.M{}, bson.M{
		"$set": bson.M{"inventoried": status},
	})
	if err != nil {
		return fmt.Errorf("set inventoried: %w", err)
	}
	return nil
}

func (r *ArticleRepo) FindByGTIN(ctx context.Context, gtin string, limit int) ([]id.ID, error) {
	type match struct {
		ID id.ID `bson:"_id"`
	}
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(ascending("_id")).
		SetLimit(int64(limit))

	// An equality filter on an array field matches any element.
	matches, err := findAll[match](ctx, r.db.collection(collArticles), bson.M{"gtins": gtin}, opts)
	if err != nil {
		return nil, fmt.Errorf("find articles by gtin: %w", err)
	}
	ids := make([]id.ID, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	return ids, nil
}
