package auth

import "context"

// TokenRepository defines token storage operations.
type TokenRepository interface {
	// FindActive returns every active record holding token.
	FindActive(ctx context.Context, token string) ([]Token, error)

	// Create stores a new token.
	Create(ctx context.Context, t Token) error
}
