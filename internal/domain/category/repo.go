package category

import (
	"context"

	"inventory/internal/core/id"
)

// Repository defines category persistence.
// Get and GetForUpdate return apperror NotFound for unknown ids.
type Repository interface {
	// List returns all categories ordered by position.
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, categoryID id.ID) (Category, error)
	// GetForUpdate reads the category and locks it until the transaction ends.
	GetForUpdate(ctx context.Context, categoryID id.ID) (Category, error)
	Exists(ctx context.Context, categoryID id.ID) (bool, error)
	Create(ctx context.Context, c Category) error
	// Update writes name and timestamp.
	Update(ctx context.Context, c Category) error
}
