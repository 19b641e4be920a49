// Package id provides integer identifiers for inventory entities.
// Identifiers are positive, allocated per entity kind, and never reused.
package id

import (
	"context"
	"fmt"
	"strconv"
)

// ID identifies a category, article or lot.
type ID = int64

// Kind names an identifier sequence. One sequence exists per entity type.
type Kind string

const (
	KindCategory Kind = "categories"
	KindArticle  Kind = "articles"
	KindLot      Kind = "lots"
)

// Allocator hands out the next identifier of a sequence.
// Implementations must be safe for concurrent use and must never return the
// same value twice for one kind.
type Allocator interface {
	Next(ctx context.Context, kind Kind) (ID, error)
}

// Parse converts a path segment to ID. Only positive integers are valid.
func Parse(s string) (ID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be positive", s)
	}
	return v, nil
}
