package lot

import (
	"context"
	"errors"
	"fmt"

	"inventory/internal/core/apperror"
	"inventory/internal/core/clock"
	"inventory/internal/core/id"
	"inventory/internal/core/revision"
	"inventory/internal/core/tx"
	"inventory/internal/domain/position"
	"inventory/pkg/logger"
)

// ArticleChecker reports whether an article exists.
type ArticleChecker interface {
	Exists(ctx context.Context, articleID id.ID) (bool, error)
}

// CreateInput holds the fields of a new lot.
type CreateInput struct {
	Article    id.ID
	BestBefore string
	Stock      int64
	Timestamp  *int64
}

// UpdateInput holds the writable fields of a lot.
type UpdateInput struct {
	BestBefore string
	Stock      int64
	Timestamp  *int64
}

// Service implements lot operations.
type Service struct {
	repo      Repository
	articles  ArticleChecker
	positions *position.Manager
	ids       id.Allocator
	txm       tx.Manager
	clock     clock.Clock
}

// NewService creates a lot service.
func NewService(
	repo Repository,
	articles ArticleChecker,
	positions *position.Manager,
	ids id.Allocator,
	txm tx.Manager,
	c clock.Clock,
) *Service {
	return &Service{
		repo:      repo,
		articles:  articles,
		positions: positions,
		ids:       ids,
		txm:       txm,
		clock:     c,
	}
}

// Get returns a single lot.
func (s *Service) Get(ctx context.Context, lotID id.ID) (Lot, error) {
	return s.repo.Get(ctx, lotID)
}

// Create appends a new lot to the end of its article.
func (s *Service) Create(ctx context.Context, in CreateInput) (Lot, error) {
	var created Lot
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		ok, err := s.articles.Exists(ctx, in.Article)
		if err != nil {
			return fmt.Errorf("check article: %w", err)
		}
		if !ok {
			return apperror.NewValidation("article does not exist").WithDetail("article", in.Article)
		}

		scope := Scope(in.Article)
		if err := s.positions.Lock(ctx, scope); err != nil {
			return err
		}
		pos, err := s.positions.Next(ctx, scope)
		if err != nil {
			return err
		}
		lotID, err := s.ids.Next(ctx, id.KindLot)
		if err != nil {
			return fmt.Errorf("allocate lot id: %w", err)
		}

		created = Lot{
			ID:         lotID,
			Article:    in.Article,
			BestBefore: in.BestBefore,
			Stock:      in.Stock,
			Position:   pos,
			Timestamp:  revision.Initial(in.Timestamp, clock.Unix(s.clock)),
		}
		return s.repo.Create(ctx, created)
	})
	if err != nil {
		return Lot{}, err
	}
	return created, nil
}

// Update overwrites best-before and stock unless the client's timestamp is
// older than the stored one. applied is false for such stale writes.
func (s *Service) Update(ctx context.Context, lotID id.ID, in UpdateInput) (applied bool, err error) {
	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, lotID)
		if err != nil {
			return err
		}

		ts, ok := revision.Resolve(current.Timestamp, in.Timestamp, clock.Unix(s.clock))
		if !ok {
			logger.Debug(ctx, "stale lot update ignored", "lot_id", lotID, "stored", current.Timestamp)
			return nil
		}

		current.BestBefore = in.BestBefore
		current.Stock = in.Stock
		current.Timestamp = ts
		applied = true
		return s.repo.Update(ctx, current)
	})
	return applied, err
}

// Increment adds one to the stock.
func (s *Service) Increment(ctx context.Context, lotID id.ID) (Lot, error) {
	return s.adjust(ctx, lotID, 1)
}

// Decrement removes one from the stock. Stock may become negative.
func (s *Service) Decrement(ctx context.Context, lotID id.ID) (Lot, error) {
	return s.adjust(ctx, lotID, -1)
}

func (s *Service) adjust(ctx context.Context, lotID id.ID, delta int64) (Lot, error) {
	var updated Lot
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.repo.AdjustStock(ctx, lotID, delta, clock.Unix(s.clock))
		return err
	})
	return updated, err
}

// Move swaps the lot with its neighbor within the article and returns both
// lots, the moved one first.
func (s *Service) Move(ctx context.Context, lotID id.ID, dir position.Direction) ([]Lot, error) {
	var result []Lot
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		// A lot never changes its article, so the unlocked read names the
		// scope to lock before the row.
		seen, err := s.repo.Get(ctx, lotID)
		if err != nil {
			return err
		}
		if err := s.positions.Lock(ctx, Scope(seen.Article)); err != nil {
			return err
		}
		current, err := s.repo.GetForUpdate(ctx, lotID)
		if err != nil {
			return err
		}

		swapped, err := s.positions.Swap(ctx, Scope(current.Article), current.Slot(), dir)
		if errors.Is(err, position.ErrNoNeighbor) {
			return apperror.NewBadRequest(fmt.Sprintf("lot cannot be moved %s", dir)).
				WithDetail("id", lotID)
		}
		if err != nil {
			return err
		}

		moved, err := s.repo.Get(ctx, swapped.Moved.ID)
		if err != nil {
			return err
		}
		displaced, err := s.repo.Get(ctx, swapped.Displaced.ID)
		if err != nil {
			return err
		}
		result = []Lot{moved, displaced}
		return nil
	})
	return result, err
}
