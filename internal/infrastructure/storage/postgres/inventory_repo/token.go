package inventory_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"inventory/internal/domain/auth"
	"inventory/internal/infrastructure/storage/postgres"
)

const tableTokens = "tokens"

var _ auth.TokenRepository = (*TokenRepo)(nil)

// TokenRepo stores API tokens.
type TokenRepo struct {
	base
}

// NewTokenRepo creates a token repository.
func NewTokenRepo(txm *postgres.TxManager) *TokenRepo {
	return &TokenRepo{base{txm: txm}}
}

func (r *TokenRepo) FindActive(ctx context.Context, token string) ([]auth.Token, error) {
	out := make([]auth.Token, 0, 1)
	q := r.Builder().Select("token", "name", "active").
		From(tableTokens).
		Where(squirrel.Eq{"token": token, "active": true})
	if err := r.selectAll(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("find token: %w", err)
	}
	return out, nil
}

func (r *TokenRepo) Create(ctx context.Context, t auth.Token) error {
	if _, err := r.exec(ctx, r.Builder().Insert(tableTokens).SetMap(postgres.Values(t))); err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}
