package memory

import (
	"github.com/shopspring/decimal"

	"inventory/internal/domain/article"
)

func newArticle(articleID, categoryID, pos int64) article.Article {
	return article.Article{
		ID:          articleID,
		Category:    categoryID,
		Name:        "article",
		Size:        decimal.NewFromInt(1),
		Unit:        "pc",
		Inventoried: article.NotTracked,
		Position:    pos,
	}
}
