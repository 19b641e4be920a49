// Package position maintains the dense 1-based ordering of records within
// their scope and implements the adjacent swap used by move-up/move-down.
package position

import (
	"fmt"

	"inventory/internal/core/id"
)

// Scope is the set of records positions are unique within: all categories,
// the articles of one category, or the lots of one article.
type Scope struct {
	// Kind is the entity collection the scope belongs to.
	Kind id.Kind
	// ParentField is the column holding the parent reference. Empty for
	// the global scope.
	ParentField string
	// ParentID is the parent the scope is limited to.
	ParentID id.ID
}

// Global is the scope spanning every record of kind.
func Global(kind id.Kind) Scope {
	return Scope{Kind: kind}
}

// Within is the scope of records of kind whose parentField equals parentID.
func Within(kind id.Kind, parentField string, parentID id.ID) Scope {
	return Scope{Kind: kind, ParentField: parentField, ParentID: parentID}
}

// IsGlobal reports whether the scope has no parent filter.
func (s Scope) IsGlobal() bool {
	return s.ParentField == ""
}

func (s Scope) String() string {
	if s.IsGlobal() {
		return string(s.Kind)
	}
	return fmt.Sprintf("%s[%s=%d]", s.Kind, s.ParentField, s.ParentID)
}

// Slot is the positional identity of one record.
type Slot struct {
	ID       id.ID `db:"id" bson:"_id"`
	Position int64 `db:"position" bson:"position"`
}

// Direction of a move.
type Direction int

const (
	// Up moves towards position 1.
	Up Direction = iota
	// Down moves towards the end of the scope.
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}
