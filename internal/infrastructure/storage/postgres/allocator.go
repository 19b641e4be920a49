package postgres

import (
	"context"

	"inventory/internal/core/id"
	"inventory/pkg/sequence"
)

var _ id.Allocator = (*IDAllocator)(nil)

// IDAllocator draws identifiers from sys_sequences inside the caller's
// transaction, so a rolled back create does not burn an id.
type IDAllocator struct {
	seq *sequence.Service
}

// NewIDAllocator creates an allocator using txm's querier resolution.
func NewIDAllocator(txm *TxManager) *IDAllocator {
	return &IDAllocator{
		seq: sequence.NewFromContext(func(ctx context.Context) sequence.Querier {
			return txm.GetQuerier(ctx)
		}),
	}
}

// Next returns the next identifier of kind.
func (a *IDAllocator) Next(ctx context.Context, kind id.Kind) (id.ID, error) {
	return a.seq.Next(ctx, string(kind))
}
