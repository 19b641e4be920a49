// Package article manages articles, their lots and their inventory status.
package article

import (
	"github.com/shopspring/decimal"

	"inventory/internal/core/id"
	"inventory/internal/domain/lot"
	"inventory/internal/domain/position"
)

// ParentField is the column linking an article to its category.
const ParentField = "category"

// Inventoried tracks whether an article was counted in the running
// stocktaking session.
type Inventoried int

const (
	// NotTracked is set on every article while no session is active.
	NotTracked Inventoried = -1
	// Pending is set on every article when a session starts.
	Pending Inventoried = 0
	// Counted is set on articles created or changed during a session.
	Counted Inventoried = 1
)

// StatusFor returns the status an article gets when it is written while a
// session is or is not active.
func StatusFor(sessionActive bool) Inventoried {
	if sessionActive {
		return Counted
	}
	return NotTracked
}

// Article is a kind of household good.
type Article struct {
	ID          id.ID           `db:"id" bson:"_id"`
	Category    id.ID           `db:"category" bson:"category"`
	Name        string          `db:"name" bson:"name"`
	Size        decimal.Decimal `db:"size" bson:"size"`
	Unit        string          `db:"unit" bson:"unit"`
	GTINs       []string        `db:"gtins" bson:"gtins"`
	Inventoried Inventoried     `db:"inventoried" bson:"inventoried"`
	Position    int64           `db:"position" bson:"position"`
	Timestamp   int64           `db:"timestamp" bson:"timestamp"`

	// Lots is filled by the service on reads; it is not a stored column.
	Lots []lot.Lot `db:"-" bson:"-"`
}

// Slot returns the positional identity of the article.
func (a Article) Slot() position.Slot {
	return position.Slot{ID: a.ID, Position: a.Position}
}

// Scope returns the ordering scope of the articles of category.
func Scope(category id.ID) position.Scope {
	return position.Within(id.KindArticle, ParentField, category)
}
