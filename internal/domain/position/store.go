package position

import (
	"context"

	"inventory/internal/core/id"
)

// Store is the storage a Manager works on. Every backend implements it once
// for all entity kinds.
//
// Methods are called inside a transaction started by the caller.
type Store interface {
	// LockScope serializes position changes within scope until the
	// surrounding transaction ends.
	LockScope(ctx context.Context, scope Scope) error

	// MaxPosition returns the highest position in scope, 0 when empty.
	MaxPosition(ctx context.Context, scope Scope) (int64, error)

	// Neighbor returns the record adjacent to position in direction dir:
	// the greatest position below it for Up, the smallest above it for Down.
	// found is false when there is none.
	Neighbor(ctx context.Context, scope Scope, pos int64, dir Direction) (slot Slot, found bool, err error)

	// SetPosition stores a new position for record id. A non-nil timestamp
	// is written along with it.
	SetPosition(ctx context.Context, kind id.Kind, recordID id.ID, pos int64, timestamp *int64) error

	// CloseGap decrements the position of every record in scope placed
	// after pos.
	CloseGap(ctx context.Context, scope Scope, pos int64) error
}
