// Package category manages the ordered list of article categories.
package category

import (
	"inventory/internal/core/id"
	"inventory/internal/domain/position"
)

// Category groups articles. Categories share one global ordering.
type Category struct {
	ID        id.ID  `db:"id" bson:"_id"`
	Name      string `db:"name" bson:"name"`
	Position  int64  `db:"position" bson:"position"`
	Timestamp int64  `db:"timestamp" bson:"timestamp"`
}

// Slot returns the positional identity of the category.
func (c Category) Slot() position.Slot {
	return position.Slot{ID: c.ID, Position: c.Position}
}

// Scope returns the ordering scope shared by all categories.
func Scope() position.Scope {
	return position.Global(id.KindCategory)
}
