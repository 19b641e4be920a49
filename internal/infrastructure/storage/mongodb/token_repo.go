package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

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

func (r *TokenRepo) FindActive(ctx context.Context, token string) ([]auth.Token, error) {
	out, err := findAll[auth.Token](ctx, r.db.collection(collTokens), bson.M{"token": token, "active": true})
	if err != nil {
		return nil, fmt.Errorf("find token: %w", err)
	}
	return out, nil
}

func (r *TokenRepo) Create(ctx context.Context, t auth.Token) error {
	if _, err := r.db.collection(collTokens).InsertOne(ctx, t); err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}
