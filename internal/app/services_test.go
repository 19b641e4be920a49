package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/internal/app"
	"inventory/internal/core/apperror"
	"inventory/internal/core/clock"
	"inventory/internal/core/id"
	"inventory/internal/domain/article"
	"inventory/internal/domain/category"
	"inventory/internal/domain/gtin"
	"inventory/internal/domain/lot"
	"inventory/internal/domain/position"
	"inventory/internal/domain/stocktaking"
	"inventory/internal/infrastructure/storage"
	"inventory/internal/infrastructure/storage/memory"
)

type noProducts struct{}

func (noProducts) Lookup(context.Context, string) (gtin.Product, bool, error) {
	return gtin.Product{}, false, nil
}

type fixture struct {
	svc   *app.Services
	clock *clock.Fixed
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	c := clock.NewFixed(time.Unix(1_000, 0))
	return &fixture{
		svc:   app.NewServices(storage.NewMemory(memory.New()), noProducts{}, c),
		clock: c,
	}
}

func ts(v int64) *int64 { return &v }

func (f *fixture) category(t *testing.T, name string) category.Category {
	t.Helper()
	c, err := f.svc.Categories.Create(context.Background(), category.CreateInput{Name: name})
	require.NoError(t, err)
	return c
}

func (f *fixture) article(t *testing.T, categoryID id.ID, name string, lots ...article.LotInput) article.Article {
	t.Helper()
	a, err := f.svc.Articles.Create(context.Background(), article.CreateInput{
		Category: categoryID,
		Name:     name,
		Size:     decimal.RequireFromString("0.5"),
		Unit:     "l",
		Lots:     lots,
	})
	require.NoError(t, err)
	return a
}

func positionsOf[T any](list []T, pos func(T) int64) []int64 {
	out := make([]int64, len(list))
	for i, v := range list {
		out[i] = pos(v)
	}
	return out
}

func articlePositions(t *testing.T, f *fixture, categoryID id.ID) []int64 {
	t.Helper()
	list, err := f.svc.Articles.ListByCategory(context.Background(), categoryID)
	require.NoError(t, err)
	return positionsOf(list, func(a article.Article) int64 { return a.Position })
}

func TestCategories_DensePositions(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"Pantry", "Fridge", "Cellar"} {
		f.category(t, name)
	}

	list, err := f.svc.Categories.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, positionsOf(list, func(c category.Category) int64 { return c.Position }))
	assert.Equal(t, "Pantry", list[0].Name)
	assert.Equal(t, int64(1_000), list[0].Timestamp)
}

func TestCategories_MoveUpSwapsWithNeighbor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pantry := f.category(t, "Pantry")
	fridge := f.category(t, "Fridge")

	f.clock.Advance(time.Minute)
	pair, err := f.svc.Categories.Move(ctx, fridge.ID, position.Up)
	require.NoError(t, err)
	require.Len(t, pair, 2)

	assert.Equal(t, fridge.ID, pair[0].ID)
	assert.Equal(t, int64(1), pair[0].Position)
	assert.Equal(t, int64(1_060), pair[0].Timestamp)

	assert.Equal(t, pantry.ID, pair[1].ID)
	assert.Equal(t, int64(2), pair[1].Position)
	assert.Equal(t, pantry.Timestamp, pair[1].Timestamp, "displaced record keeps its timestamp")
}

func TestCategories_MoveWithoutNeighbor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pantry := f.category(t, "Pantry")

	for _, dir := range []position.Direction{position.Up, position.Down} {
		_, err := f.svc.Categories.Move(ctx, pantry.ID, dir)
		assert.True(t, apperror.IsBadRequest(err), "move %s: %v", dir, err)
	}

	got, err := f.svc.Categories.Get(ctx, pantry.ID)
	require.NoError(t, err)
	assert.Equal(t, pantry, got)
}

func TestCategories_MoveDownAndBackRestoresOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.category(t, "A")
	f.category(t, "B")
	f.category(t, "C")

	_, err := f.svc.Categories.Move(ctx, a.ID, position.Down)
	require.NoError(t, err)
	_, err = f.svc.Categories.Move(ctx, a.ID, position.Down)
	require.NoError(t, err)

	list, err := f.svc.Categories.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, []string{list[0].Name, list[1].Name, list[2].Name})

	_, err = f.svc.Categories.Move(ctx, a.ID, position.Down)
	assert.True(t, apperror.IsBadRequest(err))
}

func TestCategories_StaleUpdateIsIgnored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.svc.Categories.Create(ctx, category.CreateInput{Name: "Pantry", Timestamp: ts(500)})
	require.NoError(t, err)

	applied, err := f.svc.Categories.Update(ctx, c.ID, category.UpdateInput{Name: "Old", Timestamp: ts(400)})
	require.NoError(t, err)
	assert.False(t, applied)

	got, err := f.svc.Categories.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pantry", got.Name)
	assert.Equal(t, int64(500), got.Timestamp)

	applied, err = f.svc.Categories.Update(ctx, c.ID, category.UpdateInput{Name: "Same", Timestamp: ts(500)})
	require.NoError(t, err)
	assert.True(t, applied, "equal timestamps are accepted")

	applied, err = f.svc.Categories.Update(ctx, c.ID, category.UpdateInput{Name: "Now"})
	require.NoError(t, err)
	assert.True(t, applied)

	got, err = f.svc.Categories.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Now", got.Name)
	assert.Equal(t, int64(1_000), got.Timestamp)
}

func TestCategories_UpdateMissing(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Categories.Update(context.Background(), 42, category.UpdateInput{Name: "x"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestArticles_CreateRequiresCategory(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Articles.Create(context.Background(), article.CreateInput{Category: 9, Name: "Milk"})
	assert.True(t, apperror.IsValidation(err))
}

func TestArticles_CreateWithInlineLots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "Fridge")

	a := f.article(t, c.ID, "Milk",
		article.LotInput{BestBefore: "2026-11-01", Stock: 2},
		article.LotInput{BestBefore: "2026-12-01", Stock: 1, Timestamp: ts(7)},
	)
	assert.Equal(t, int64(1), a.Position)
	assert.Equal(t, article.NotTracked, a.Inventoried)
	assert.Equal(t, []string{}, a.GTINs)

	got, err := f.svc.Articles.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got.Lots, 2)
	assert.Equal(t, []int64{1, 2}, positionsOf(got.Lots, func(l lot.Lot) int64 { return l.Position }))
	assert.Equal(t, int64(1_000), got.Lots[0].Timestamp)
	assert.Equal(t, int64(7), got.Lots[1].Timestamp)
	assert.True(t, got.Size.Equal(decimal.RequireFromString("0.5")))
}

func TestArticles_PositionsArePerCategory(t *testing.T) {
	f := newFixture(t)
	fridge := f.category(t, "Fridge")
	pantry := f.category(t, "Pantry")

	f.article(t, fridge.ID, "Milk")
	f.article(t, fridge.ID, "Butter")
	f.article(t, pantry.ID, "Rice")

	assert.Equal(t, []int64{1, 2}, articlePositions(t, f, fridge.ID))
	assert.Equal(t, []int64{1}, articlePositions(t, f, pantry.ID))
}

func TestArticles_CategoryChangeCompactsSource(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fridge := f.category(t, "Fridge")
	pantry := f.category(t, "Pantry")

	milk := f.article(t, fridge.ID, "Milk")
	f.article(t, fridge.ID, "Butter")
	f.article(t, fridge.ID, "Cheese")
	f.article(t, pantry.ID, "Rice")

	applied, err := f.svc.Articles.Update(ctx, milk.ID, article.UpdateInput{
		Category: pantry.ID,
		Name:     "Milk",
		Size:     decimal.NewFromInt(1),
		Unit:     "l",
	})
	require.NoError(t, err)
	assert.True(t, applied)

	got, err := f.svc.Articles.Get(ctx, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, pantry.ID, got.Category)
	assert.Equal(t, int64(2), got.Position)

	assert.Equal(t, []int64{1, 2}, articlePositions(t, f, fridge.ID))
	assert.Equal(t, []int64{1, 2}, articlePositions(t, f, pantry.ID))
}

func TestArticles_UpdateReplacesLots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "Fridge")
	a := f.article(t, c.ID, "Milk",
		article.LotInput{BestBefore: "2026-11-01", Stock: 2},
		article.LotInput{BestBefore: "2026-12-01", Stock: 1},
	)

	in := article.UpdateInput{Category: c.ID, Name: "Milk", Size: a.Size, Unit: "l"}
	_, err := f.svc.Articles.Update(ctx, a.ID, in)
	require.NoError(t, err)
	got, err := f.svc.Articles.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, got.Lots, 2, "absent lots leave them untouched")

	in.Lots = &[]article.LotInput{{BestBefore: "2027-01-01", Stock: 6}}
	_, err = f.svc.Articles.Update(ctx, a.ID, in)
	require.NoError(t, err)
	got, err = f.svc.Articles.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got.Lots, 1)
	assert.Equal(t, "2027-01-01", got.Lots[0].BestBefore)
	assert.Equal(t, int64(1), got.Lots[0].Position)

	in.Lots = &[]article.LotInput{}
	_, err = f.svc.Articles.Update(ctx, a.ID, in)
	require.NoError(t, err)
	got, err = f.svc.Articles.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Lots)
}

func TestArticles_StaleUpdateKeepsLots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "Fridge")
	a := f.article(t, c.ID, "Milk", article.LotInput{BestBefore: "2026-11-01", Stock: 2})

	applied, err := f.svc.Articles.Update(ctx, a.ID, article.UpdateInput{
		Category:  c.ID,
		Name:      "Renamed",
		Timestamp: ts(999),
		Lots:      &[]article.LotInput{},
	})
	require.NoError(t, err)
	assert.False(t, applied)

	got, err := f.svc.Articles.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", got.Name)
	assert.Len(t, got.Lots, 1)
}

func TestArticles_Reset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "Fridge")
	a := f.article(t, c.ID, "Milk", article.LotInput{BestBefore: "2026-11-01", Stock: 2})

	stale, err := f.svc.Articles.Reset(ctx, a.ID, article.ResetInput{Timestamp: ts(10)})
	require.NoError(t, err)
	assert.Len(t, stale.Lots, 1, "stale reset changes nothing")

	f.clock.Advance(time.Second)
	reset, err := f.svc.Articles.Reset(ctx, a.ID, article.ResetInput{})
	require.NoError(t, err)
	assert.Empty(t, reset.Lots)
	assert.NotNil(t, reset.Lots)
	assert.Equal(t, int64(1_001), reset.Timestamp)
	assert.Equal(t, article.NotTracked, reset.Inventoried)

	_, err = f.svc.Articles.Reset(ctx, 99, article.ResetInput{})
	assert.True(t, apperror.IsNotFound(err))
}

func TestArticles_AdjustStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "Pantry")
	rice := f.article(t, c.ID, "Rice",
		article.LotInput{BestBefore: "2027-01-01", Stock: 3},
		article.LotInput{BestBefore: "2026-06-01", Stock: 1})
	salt := f.article(t, c.ID, "Salt")

	f.clock.Advance(time.Second)
	got, err := f.svc.Articles.AdjustStock(ctx, rice.ID, -1)
	require.NoError(t, err)
	require.Len(t, got.Lots, 2)
	assert.Equal(t, int64(2), got.Lots[0].Stock, "first lot absorbs the change")
	assert.Equal(t, int64(1), got.Lots[1].Stock)
	assert.Equal(t, int64(1_001), got.Timestamp)

	got, err = f.svc.Articles.AdjustStock(ctx, salt.ID, -1)
	require.NoError(t, err)
	require.Len(t, got.Lots, 1)
	assert.Equal(t, int64(-1), got.Lots[0].Stock)
	assert.Empty(t, got.Lots[0].BestBefore)
	assert.Equal(t, int64(1), got.Lots[0].Position)

	got, err = f.svc.Articles.AdjustStock(ctx, salt.ID, 1)
	require.NoError(t, err)
	require.Len(t, got.Lots, 1)
	assert.Equal(t, int64(0), got.Lots[0].Stock)

	_, err = f.svc.Articles.AdjustStock(ctx, 99, 1)
	assert.True(t, apperror.IsNotFound(err))
}

func TestArticles_MoveWithinCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fridge := f.category(t, "Fridge")
	pantry := f.category(t, "Pantry")
	milk := f.article(t, fridge.ID, "Milk")
	butter := f.article(t, fridge.ID, "Butter")
	f.article(t, pantry.ID, "Rice")

	pair, err := f.svc.Articles.Move(ctx, milk.ID, position.Down)
	require.NoError(t, err)
	require.Len(t, pair, 2)
	assert.Equal(t, milk.ID, pair[0].ID)
	assert.Equal(t, int64(2), pair[0].Position)
	assert.Equal(t, butter.ID, pair[1].ID)
	assert.Equal(t, int64(1), pair[1].Position)

	_, err = f.svc.Articles.Move(ctx, milk.ID, position.Down)
	assert.True(t, apperror.IsBadRequest(err), "rice lives in another category")
}

func TestLots_CreateAndMove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "Fridge")
	a := f.article(t, c.ID, "Milk")

	first, err := f.svc.Lots.Create(ctx, lot.CreateInput{Article: a.ID, BestBefore: "2026-11-01", Stock: 1})
	require.NoError(t, err)
	second, err := f.svc.Lots.Create(ctx, lot.CreateInput{Article: a.ID, BestBefore: "2026-12-01", Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Position)
	assert.Equal(t, int64(2), second.Position)

	pair, err := f.svc.Lots.Move(ctx, second.ID, position.Up)
	require.NoError(t, err)
	assert.Equal(t, []id.ID{second.ID, first.ID}, []id.ID{pair[0].ID, pair[1].ID})
	assert.Equal(t, []int64{1, 2}, []int64{pair[0].Position, pair[1].Position})

	_, err = f.svc.Lots.Move(ctx, second.ID, position.Up)
	assert.True(t, apperror.IsBadRequest(err))

	_, err = f.svc.Lots.Create(ctx, lot.CreateInput{Article: 77, BestBefore: "2026-12-01"})
	assert.True(t, apperror.IsValidation(err))
}

func TestLots_StockDeltaDoesNotClamp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "Fridge")
	a := f.article(t, c.ID, "Milk")
	l, err := f.svc.Lots.Create(ctx, lot.CreateInput{Article: a.ID, BestBefore: "2026-11-01", Stock: 0, Timestamp: ts(5)})
	require.NoError(t, err)

	got, err := f.svc.Lots.Decrement(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), got.Stock)
	assert.Equal(t, int64(1_000), got.Timestamp)

	got, err = f.svc.Lots.Increment(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Stock)

	_, err = f.svc.Lots.Increment(ctx, 404)
	assert.True(t, apperror.IsNotFound(err))
}

func TestLots_StaleUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "Fridge")
	a := f.article(t, c.ID, "Milk")
	l, err := f.svc.Lots.Create(ctx, lot.CreateInput{Article: a.ID, BestBefore: "2026-11-01", Stock: 4, Timestamp: ts(800)})
	require.NoError(t, err)

	applied, err := f.svc.Lots.Update(ctx, l.ID, lot.UpdateInput{BestBefore: "2030-01-01", Stock: 0, Timestamp: ts(799)})
	require.NoError(t, err)
	assert.False(t, applied)

	got, err := f.svc.Lots.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Stock)

	applied, err = f.svc.Lots.Update(ctx, l.ID, lot.UpdateInput{BestBefore: "2030-01-01", Stock: 9, Timestamp: ts(801)})
	require.NoError(t, err)
	assert.True(t, applied)

	got, err = f.svc.Lots.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.Stock)
	assert.Equal(t, int64(801), got.Timestamp)
}

func TestStocktaking_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "Fridge")
	milk := f.article(t, c.ID, "Milk")

	status, err := f.svc.Stocktaking.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, stocktaking.StatusInactive, status)

	assert.True(t, apperror.IsConflict(f.svc.Stocktaking.Stop(ctx)))

	require.NoError(t, f.svc.Stocktaking.Start(ctx))
	assert.True(t, apperror.IsConflict(f.svc.Stocktaking.Start(ctx)))

	status, err = f.svc.Stocktaking.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, stocktaking.StatusActive, status)

	got, err := f.svc.Articles.Get(ctx, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, article.Pending, got.Inventoried)

	butter := f.article(t, c.ID, "Butter")
	assert.Equal(t, article.Counted, butter.Inventoried)

	reset, err := f.svc.Articles.Reset(ctx, milk.ID, article.ResetInput{})
	require.NoError(t, err)
	assert.Equal(t, article.Counted, reset.Inventoried)

	require.NoError(t, f.svc.Stocktaking.Stop(ctx))
	list, err := f.svc.Articles.List(ctx)
	require.NoError(t, err)
	for _, a := range list {
		assert.Equal(t, article.NotTracked, a.Inventoried, a.Name)
	}
}

func TestGTIN_ExistingArticle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "Fridge")
	a, err := f.svc.Articles.Create(ctx, article.CreateInput{
		Category: c.ID, Name: "Milk", Unit: "l", GTINs: []string{"7610000000001"},
	})
	require.NoError(t, err)

	res, err := f.svc.GTIN.Lookup(ctx, "7610000000001")
	require.NoError(t, err)
	assert.Equal(t, gtin.TypeExisting, res.Type)
	assert.Equal(t, a.ID, res.ArticleID)

	res, err = f.svc.GTIN.Lookup(ctx, "4000000000002")
	require.NoError(t, err)
	assert.Equal(t, gtin.TypeNotFound, res.Type)
}
