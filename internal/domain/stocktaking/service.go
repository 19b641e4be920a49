package stocktaking

import (
	"context"
	"fmt"

	"inventory/internal/core/apperror"
	"inventory/internal/core/clock"
	"inventory/internal/core/tx"
	"inventory/internal/domain/article"
	"inventory/pkg/logger"
)

// Service implements session lifecycle operations.
type Service struct {
	repo     Repository
	articles ArticleMarker
	txm      tx.Manager
	clock    clock.Clock
}

// NewService creates a stocktaking service.
func NewService(repo Repository, articles ArticleMarker, txm tx.Manager, c clock.Clock) *Service {
	return &Service{repo: repo, articles: articles, txm: txm, clock: c}
}

// IsActive reports whether a session is running.
func (s *Service) IsActive(ctx context.Context) (bool, error) {
	current, err := s.repo.Current(ctx)
	if err != nil {
		return false, fmt.Errorf("load current session: %w", err)
	}
	return current != nil, nil
}

// Status returns the externally visible session state.
func (s *Service) Status(ctx context.Context) (Status, error) {
	active, err := s.IsActive(ctx)
	if err != nil {
		return "", err
	}
	if active {
		return StatusActive, nil
	}
	return StatusInactive, nil
}

// Start opens a session and marks every article as pending.
func (s *Service) Start(ctx context.Context) error {
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.Current(ctx)
		if err != nil {
			return fmt.Errorf("load current session: %w", err)
		}
		if current != nil {
			return apperror.NewConflict("inventory session is already active").
				WithDetail("started", current.Start)
		}

		if err := s.articles.SetInventoriedAll(ctx, article.Pending); err != nil {
			return fmt.Errorf("mark articles pending: %w", err)
		}
		if err := s.repo.Open(ctx, s.clock.Now()); err != nil {
			return fmt.Errorf("open session: %w", err)
		}

		logger.Info(ctx, "inventory session started")
		return nil
	})
}

// Stop closes the running session and clears the status of every article.
func (s *Service) Stop(ctx context.Context) error {
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.Current(ctx)
		if err != nil {
			return fmt.Errorf("load current session: %w", err)
		}
		if current == nil {
			return apperror.NewConflict("no inventory session is active")
		}

		if err := s.articles.SetInventoriedAll(ctx, article.NotTracked); err != nil {
			return fmt.Errorf("clear article status: %w", err)
		}
		if err := s.repo.Close(ctx, s.clock.Now()); err != nil {
			return fmt.Errorf("close session: %w", err)
		}

		logger.Info(ctx, "inventory session stopped", "started", current.Start)
		return nil
	})
}
