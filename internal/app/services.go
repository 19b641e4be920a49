// Package app wires the domain services onto a storage backend.
package app

import (
	"inventory/internal/core/clock"
	"inventory/internal/domain/article"
	"inventory/internal/domain/auth"
	"inventory/internal/domain/category"
	"inventory/internal/domain/gtin"
	"inventory/internal/domain/lot"
	"inventory/internal/domain/position"
	"inventory/internal/domain/stocktaking"
	"inventory/internal/infrastructure/storage"
)

// Services holds every domain service of the API.
type Services struct {
	Categories  *category.Service
	Articles    *article.Service
	Lots        *lot.Service
	Stocktaking *stocktaking.Service
	GTIN        *gtin.Service
	Auth        *auth.Service
}

// NewServices builds the services on b. products answers barcode lookups
// the stored articles cannot.
func NewServices(b *storage.Backend, products gtin.ProductLookup, c clock.Clock) *Services {
	positions := position.NewManager(b.Positions, c)

	sessions := stocktaking.NewService(b.Sessions, b.Articles, b.Tx, c)
	categories := category.NewService(b.Categories, positions, b.IDs, b.Tx, c)
	articles := article.NewService(b.Articles, b.Lots, categories, sessions, positions, b.IDs, b.Tx, c)
	lots := lot.NewService(b.Lots, articles, positions, b.IDs, b.Tx, c)

	return &Services{
		Categories:  categories,
		Articles:    articles,
		Lots:        lots,
		Stocktaking: sessions,
		GTIN:        gtin.NewService(articles, products),
		Auth:        auth.NewService(b.Tokens),
	}
}
