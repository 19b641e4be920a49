package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"inventory/internal/core/id"
	"inventory/internal/domain/position"
)

func TestNeighborFilter(t *testing.T) {
	scope := position.Within(id.KindLot, "article", 4)

	filter, sort := neighborFilter(scope, 2, position.Up)
	assert.Equal(t, bson.M{"article": id.ID(4), "position": bson.M{"$lt": int64(2)}}, filter)
	assert.Equal(t, bson.D{{Key: "position", Value: -1}}, sort)

	filter, sort = neighborFilter(position.Global(id.KindCategory), 2, position.Down)
	assert.Equal(t, bson.M{"position": bson.M{"$gt": int64(2)}}, filter)
	assert.Equal(t, bson.D{{Key: "position", Value: 1}}, sort)
}

func TestAscending(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "category", Value: 1}, {Key: "position", Value: 1}}, ascending("category", "position"))
}

func TestScopeLock(t *testing.T) {
	filter, update := scopeLock(position.Within(id.KindArticle, "category", 7))
	assert.Equal(t, bson.M{"_id": "articles[category=7]"}, filter)
	assert.Equal(t, bson.M{"$inc": bson.M{"v": 1}}, update)

	other, _ := scopeLock(position.Within(id.KindArticle, "category", 8))
	assert.NotEqual(t, filter, other)

	global, _ := scopeLock(position.Global(id.KindCategory))
	assert.Equal(t, bson.M{"_id": "categories"}, global)
}
