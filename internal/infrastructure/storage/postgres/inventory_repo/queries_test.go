package inventory_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/internal/core/id"
	"inventory/internal/domain/lot"
	"inventory/internal/domain/position"
)

func toSQL(t *testing.T, q squirrel.Sqlizer) (string, []any) {
	t.Helper()
	sql, args, err := q.ToSql()
	require.NoError(t, err)
	return sql, args
}

func TestExistsQuery(t *testing.T) {
	sql, args := toSQL(t, base{}.existsQuery(tableCategories, squirrel.Eq{"id": id.ID(4)}))

	assert.Equal(t, "SELECT EXISTS ( SELECT 1 FROM categories WHERE id = $1 )", sql)
	assert.Equal(t, []any{id.ID(4)}, args)
}

func TestPositionStore_NeighborQuery(t *testing.T) {
	s := &PositionStore{}
	scope := position.Within(id.KindArticle, "category", 5)

	tests := []struct {
		name    string
		dir     position.Direction
		wantSQL string
	}{
		{
			name:    "up",
			dir:     position.Up,
			wantSQL: `SELECT id, "position" FROM articles WHERE category = $1 AND "position" < $2 ORDER BY "position" DESC LIMIT 1 FOR UPDATE`,
		},
		{
			name:    "down",
			dir:     position.Down,
			wantSQL: `SELECT id, "position" FROM articles WHERE category = $1 AND "position" > $2 ORDER BY "position" ASC LIMIT 1 FOR UPDATE`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := toSQL(t, s.neighborQuery(scope, 3, tt.dir))
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, []any{id.ID(5), int64(3)}, args)
		})
	}
}

func TestPositionStore_MaxPositionQuery(t *testing.T) {
	s := &PositionStore{}

	sql, args := toSQL(t, s.maxPositionQuery(position.Within(id.KindLot, "article", 9)))
	assert.Equal(t, `SELECT COALESCE(MAX("position"), 0) FROM lots WHERE article = $1`, sql)
	assert.Equal(t, []any{id.ID(9)}, args)

	sql, args = toSQL(t, s.maxPositionQuery(position.Global(id.KindCategory)))
	assert.Equal(t, `SELECT COALESCE(MAX("position"), 0) FROM categories WHERE TRUE`, sql)
	assert.Empty(t, args)
}

func TestPositionStore_CloseGapQuery(t *testing.T) {
	s := &PositionStore{}

	sql, args := toSQL(t, s.closeGapQuery(position.Global(id.KindCategory), 2))
	assert.Equal(t, `UPDATE categories SET "position" = "position" - 1 WHERE TRUE AND "position" > $1`, sql)
	assert.Equal(t, []any{int64(2)}, args)
}

func TestLockKey(t *testing.T) {
	key, err := lockKey(position.Within(id.KindLot, "article", 12))
	require.NoError(t, err)
	assert.Equal(t, "position:lots[article=12]", key)

	key, err = lockKey(position.Global(id.KindCategory))
	require.NoError(t, err)
	assert.Equal(t, "position:categories", key)

	_, err = lockKey(position.Global("widgets"))
	assert.Error(t, err)
}

func TestLockKey_KeepsHighBits(t *testing.T) {
	low, err := lockKey(position.Within(id.KindArticle, "category", 5))
	require.NoError(t, err)
	high, err := lockKey(position.Within(id.KindArticle, "category", 1<<32+5))
	require.NoError(t, err)

	assert.NotEqual(t, low, high)
	assert.Equal(t, "position:articles[category=4294967301]", high)
}

func TestLotRepo_AdjustStockQuery(t *testing.T) {
	r := &LotRepo{}

	sql, args := toSQL(t, r.adjustStockQuery(7, -2, 100))
	assert.Equal(t,
		`UPDATE lots SET stock = stock + $1, "timestamp" = $2 WHERE id = $3 `+
			`RETURNING "id", "article", "best_before", "stock", "position", "timestamp"`,
		sql)
	assert.Equal(t, []any{int64(-2), int64(100), id.ID(7)}, args)
}

func TestLotRepo_InsertQuery_MultiRow(t *testing.T) {
	r := &LotRepo{}
	lots := []lot.Lot{
		{ID: 1, Article: 3, BestBefore: "2026-01-01", Stock: 2, Position: 1, Timestamp: 10},
		{ID: 2, Article: 3, Stock: 5, Position: 2, Timestamp: 10},
	}

	sql, args := toSQL(t, r.insertQuery(lots))
	assert.Contains(t, sql, "INSERT INTO lots")
	assert.Contains(t, sql, "$12")
	require.Len(t, args, 12)
	assert.Equal(t, "2026-01-01", args[2])
	assert.Equal(t, int64(5), args[9])
}

func TestArticleRepo_FindByGTINQuery(t *testing.T) {
	r := &ArticleRepo{}

	sql, args := toSQL(t, r.findByGTINQuery("4006381333931", 2))
	assert.Equal(t, "SELECT id FROM articles WHERE gtins @> ARRAY[$1]::text[] ORDER BY id LIMIT 2", sql)
	assert.Equal(t, []any{"4006381333931"}, args)
}

func TestSessionRepo_CurrentQuery(t *testing.T) {
	r := &SessionRepo{}

	sql, args := toSQL(t, r.currentQuery())
	assert.Equal(t, `SELECT id, "start", "stop" FROM inventories WHERE "stop" IS NULL LIMIT 1`, sql)
	assert.Empty(t, args)
}
