package gtin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/internal/core/id"
)

type stubFinder map[string][]id.ID

func (s stubFinder) FindByGTIN(_ context.Context, gtin string, limit int) ([]id.ID, error) {
	ids := s[gtin]
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

type stubProducts struct {
	product Product
	found   bool
	err     error
	calls   int
}

func (s *stubProducts) Lookup(context.Context, string) (Product, bool, error) {
	s.calls++
	return s.product, s.found, s.err
}

func TestLookup_ExistingArticle(t *testing.T) {
	products := &stubProducts{}
	svc := NewService(stubFinder{"7610000000001": {42}}, products)

	res, err := svc.Lookup(context.Background(), "7610000000001")
	require.NoError(t, err)
	assert.Equal(t, Result{Type: TypeExisting, ArticleID: 42}, res)
	assert.Zero(t, products.calls)
}

func TestLookup_AmbiguousArticlesAskExternal(t *testing.T) {
	products := &stubProducts{product: Product{Name: "Milch", Quantity: "1 l"}, found: true}
	svc := NewService(stubFinder{"123": {1, 2, 3}}, products)

	res, err := svc.Lookup(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, Result{Type: TypeFound, Name: "Milch", Quantity: "1 l"}, res)
	assert.Equal(t, 1, products.calls)
}

func TestLookup_NotFoundAndError(t *testing.T) {
	svc := NewService(stubFinder{}, &stubProducts{})
	res, err := svc.Lookup(context.Background(), "999")
	require.NoError(t, err)
	assert.Equal(t, TypeNotFound, res.Type)

	svc = NewService(stubFinder{}, &stubProducts{err: errors.New("dial tcp: timeout")})
	res, err = svc.Lookup(context.Background(), "999")
	require.NoError(t, err)
	assert.Equal(t, TypeError, res.Type)
	assert.Equal(t, "dial tcp: timeout", res.Error)
}
