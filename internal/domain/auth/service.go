package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inventory/internal/core/apperror"
)

// Service authenticates bearer tokens.
type Service struct {
	tokens TokenRepository
}

// NewService creates an auth service.
func NewService(tokens TokenRepository) *Service {
	return &Service{tokens: tokens}
}

// Authenticate resolves token to its client. The token must match exactly
// one active record.
func (s *Service) Authenticate(ctx context.Context, token string) (*Client, error) {
	if token == "" {
		return nil, apperror.NewUnauthorized("missing token")
	}

	matches, err := s.tokens.FindActive(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("find token: %w", err)
	}
	if len(matches) != 1 {
		return nil, apperror.NewUnauthorized("invalid token")
	}

	return &Client{Name: matches[0].Name}, nil
}

// Issue creates a new active token for the named client and returns it.
func (s *Service) Issue(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.NewValidation("client name is required")
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := s.tokens.Create(ctx, Token{Token: token, Name: name, Active: true}); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return token, nil
}
