package memory

import (
	"context"

	"inventory/internal/domain/auth"
)

var _ auth.TokenRepository = (*TokenRepo)(nil)

// TokenRepo stores API tokens.
type TokenRepo struct {
	db *DB
}

// NewTokenRepo creates a token repository.
func NewTokenRepo(db *DB) *TokenRepo {
	return &TokenRepo{db: db}
}

func (r *TokenRepo) FindActive(_ context.Context, token string) ([]auth.Token, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []auth.Token
	for _, t := range r.db.tokens {
		if t.Token == token && t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TokenRepo) Create(_ context.Context, t auth.Token) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.tokens = append(r.db.tokens, t)
	return nil
}
