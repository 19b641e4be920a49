package gtin

import (
	"context"
	"fmt"

	"inventory/internal/core/id"
	"inventory/pkg/logger"
)

// ArticleFinder finds articles by barcode.
type ArticleFinder interface {
	FindByGTIN(ctx context.Context, gtin string, limit int) ([]id.ID, error)
}

// ProductLookup queries the external product database. found is false when
// the product is unknown there.
type ProductLookup interface {
	Lookup(ctx context.Context, gtin string) (product Product, found bool, err error)
}

// Service implements barcode lookups.
type Service struct {
	articles ArticleFinder
	products ProductLookup
}

// NewService creates a lookup service.
func NewService(articles ArticleFinder, products ProductLookup) *Service {
	return &Service{articles: articles, products: products}
}

// Lookup resolves code. A barcode listed by exactly one article resolves to
// that article; otherwise the external database is asked. Failures of the
// external database are reported in the result, not as an error.
func (s *Service) Lookup(ctx context.Context, code string) (Result, error) {
	ids, err := s.articles.FindByGTIN(ctx, code, 2)
	if err != nil {
		return Result{}, fmt.Errorf("find articles by gtin: %w", err)
	}
	if len(ids) == 1 {
		return Result{Type: TypeExisting, ArticleID: ids[0]}, nil
	}

	product, found, err := s.products.Lookup(ctx, code)
	if err != nil {
		logger.Warn(ctx, "product lookup failed", "gtin", code, "error", err)
		return Result{Type: TypeError, Error: err.Error()}, nil
	}
	if !found {
		return Result{Type: TypeNotFound}, nil
	}
	return Result{Type: TypeFound, Name: product.Name, Quantity: product.Quantity}, nil
}
