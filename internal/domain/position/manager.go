package position

import (
	"context"
	"errors"
	"fmt"

	"inventory/internal/core/clock"
)

// ErrNoNeighbor is returned by Swap when the record is already first (Up)
// or last (Down) in its scope.
var ErrNoNeighbor = errors.New("no neighbor in move direction")

// Swapped describes the outcome of a successful Swap.
type Swapped struct {
	// Moved is the record that was asked to move, at its new position.
	Moved Slot
	// Displaced is the former neighbor, now at the old position of Moved.
	Displaced Slot
	// Timestamp is the timestamp written to Moved.
	Timestamp int64
}

// Manager allocates and swaps positions.
type Manager struct {
	store Store
	clock clock.Clock
}

// NewManager creates a position manager.
func NewManager(store Store, c clock.Clock) *Manager {
	return &Manager{store: store, clock: c}
}

// Lock serializes position changes in scope for the current transaction.
func (m *Manager) Lock(ctx context.Context, scope Scope) error {
	if err := m.store.LockScope(ctx, scope); err != nil {
		return fmt.Errorf("lock %s: %w", scope, err)
	}
	return nil
}

// Next returns the position a new record appended to scope gets: one past
// the current maximum, or 1 for an empty scope.
//
// The caller must hold the scope lock for the result to stay unique until
// the record is written.
func (m *Manager) Next(ctx context.Context, scope Scope) (int64, error) {
	max, err := m.store.MaxPosition(ctx, scope)
	if err != nil {
		return 0, fmt.Errorf("max position of %s: %w", scope, err)
	}
	return max + 1, nil
}

// Swap exchanges the position of record current with its neighbor in
// direction dir. The moved record gets the current time as its timestamp;
// the displaced neighbor keeps its own.
func (m *Manager) Swap(ctx context.Context, scope Scope, current Slot, dir Direction) (Swapped, error) {
	if err := m.Lock(ctx, scope); err != nil {
		return Swapped{}, err
	}

	neighbor, found, err := m.store.Neighbor(ctx, scope, current.Position, dir)
	if err != nil {
		return Swapped{}, fmt.Errorf("neighbor of %s/%d: %w", scope, current.ID, err)
	}
	if !found {
		return Swapped{}, ErrNoNeighbor
	}

	now := clock.Unix(m.clock)
	if err := m.store.SetPosition(ctx, scope.Kind, current.ID, neighbor.Position, &now); err != nil {
		return Swapped{}, fmt.Errorf("set position of %s/%d: %w", scope.Kind, current.ID, err)
	}
	if err := m.store.SetPosition(ctx, scope.Kind, neighbor.ID, current.Position, nil); err != nil {
		return Swapped{}, fmt.Errorf("set position of %s/%d: %w", scope.Kind, neighbor.ID, err)
	}

	return Swapped{
		Moved:     Slot{ID: current.ID, Position: neighbor.Position},
		Displaced: Slot{ID: neighbor.ID, Position: current.Position},
		Timestamp: now,
	}, nil
}

// Detach closes the hole a record leaves at pos when it moves out of scope.
func (m *Manager) Detach(ctx context.Context, scope Scope, pos int64) error {
	if err := m.Lock(ctx, scope); err != nil {
		return err
	}
	if err := m.store.CloseGap(ctx, scope, pos); err != nil {
		return fmt.Errorf("close gap in %s at %d: %w", scope, pos, err)
	}
	return nil
}
