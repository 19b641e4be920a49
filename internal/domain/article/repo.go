package article

import (
	"context"

	"inventory/internal/core/id"
)

// Repository defines article persistence. Returned articles carry no lots.
// Get and GetForUpdate return apperror NotFound for unknown ids.
type Repository interface {
	// List returns all articles ordered by category, then position.
	List(ctx context.Context) ([]Article, error)
	// ListByCategory returns the articles of one category ordered by position.
	ListByCategory(ctx context.Context, category id.ID) ([]Article, error)
	Get(ctx context.Context, articleID id.ID) (Article, error)
	// GetForUpdate reads the article and locks it until the transaction ends.
	GetForUpdate(ctx context.Context, articleID id.ID) (Article, error)
	Exists(ctx context.Context, articleID id.ID) (bool, error)
	Create(ctx context.Context, a Article) error
	// Update writes every stored field except the id.
	Update(ctx context.Context, a Article) error
	// SetInventoriedAll overwrites the status of every article.
	SetInventoriedAll(ctx context.Context, status Inventoried) error
	// FindByGTIN returns the ids of at most limit articles listing gtin.
	FindByGTIN(ctx context.Context, gtin string, limit int) ([]id.ID, error)
}
