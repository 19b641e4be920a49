// Package lot manages the stock batches of an article.
package lot

import (
	"inventory/internal/core/id"
	"inventory/internal/domain/position"
)

// ParentField is the column linking a lot to its article.
const ParentField = "article"

// Lot is a quantity of an article sharing one best-before date.
type Lot struct {
	ID         id.ID  `db:"id" bson:"_id"`
	Article    id.ID  `db:"article" bson:"article"`
	BestBefore string `db:"best_before" bson:"bestBefore"`
	Stock      int64  `db:"stock" bson:"stock"`
	Position   int64  `db:"position" bson:"position"`
	Timestamp  int64  `db:"timestamp" bson:"timestamp"`
}

// Slot returns the positional identity of the lot.
func (l Lot) Slot() position.Slot {
	return position.Slot{ID: l.ID, Position: l.Position}
}

// Scope returns the ordering scope of the lots of article.
func Scope(article id.ID) position.Scope {
	return position.Within(id.KindLot, ParentField, article)
}
