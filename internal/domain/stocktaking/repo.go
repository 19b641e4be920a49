package stocktaking

import (
	"context"
	"time"

	"inventory/internal/domain/article"
)

// Repository persists sessions. At most one session is open at a time.
type Repository interface {
	// Current returns the open session, or nil when none is open.
	Current(ctx context.Context) (*Session, error)
	// Open records a new session started at start.
	Open(ctx context.Context, start time.Time) error
	// Close sets stop on the open session.
	Close(ctx context.Context, stop time.Time) error
}

// ArticleMarker overwrites the inventory status of every article.
type ArticleMarker interface {
	SetInventoriedAll(ctx context.Context, status article.Inventoried) error
}
