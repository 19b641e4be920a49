package lot

import (
	"context"

	"inventory/internal/core/id"
)

// Repository defines lot persistence.
// Get and GetForUpdate return apperror NotFound for unknown ids.
type Repository interface {
	// ListByArticles returns the lots of the given articles ordered by
	// article, then position.
	ListByArticles(ctx context.Context, articles []id.ID) ([]Lot, error)
	Get(ctx context.Context, lotID id.ID) (Lot, error)
	// GetForUpdate reads the lot and locks it until the transaction ends.
	GetForUpdate(ctx context.Context, lotID id.ID) (Lot, error)
	Create(ctx context.Context, lots ...Lot) error
	// Update writes best-before, stock and timestamp.
	Update(ctx context.Context, l Lot) error
	// AdjustStock adds delta to the stock in a single atomic step, sets the
	// timestamp and returns the updated lot.
	AdjustStock(ctx context.Context, lotID id.ID, delta int64, timestamp int64) (Lot, error)
	DeleteByArticle(ctx context.Context, article id.ID) error
}
