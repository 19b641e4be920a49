package v2

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"inventory/internal/domain/article"
	"inventory/internal/domain/lot"
)

func TestFromArticle_Flattens(t *testing.T) {
	a := article.Article{
		ID:       3,
		Category: 1,
		Name:     "Rice",
		Size:     decimal.RequireFromString("0.5"),
		Unit:     "kg",
		Position: 2,
		Lots: []lot.Lot{
			{BestBefore: "2027-01-01", Stock: 2},
			{BestBefore: "", Stock: 1},
			{BestBefore: "2026-03-01", Stock: -1},
		},
	}

	got := FromArticle(a)
	assert.Equal(t, int64(2), got.Stock)
	assert.Equal(t, "2026-03-01", got.BestBefore)
	assert.Equal(t, 0.5, got.Size)

	a.Lots = nil
	got = FromArticle(a)
	assert.Zero(t, got.Stock)
	assert.Empty(t, got.BestBefore)
}

func TestArticleRequest_LotOnlyWhenStocked(t *testing.T) {
	category, name, size, unit := int64(1), "Salt", 1.0, "kg"
	req := ArticleRequest{Category: &category, Name: &name, Size: &size, Unit: &unit}
	assert.Empty(t, req.ToCreateInput().Lots)

	req.Stock = 4
	in := req.ToCreateInput()
	assert.Equal(t, []article.LotInput{{Stock: 4}}, in.Lots)
}
