package category

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

// CreateInput holds the fields of a new category.
type CreateInput struct {
	Name      string
	Timestamp *int64
}

// UpdateInput holds the writable fields of a category.
type UpdateInput struct {
	Name      string
	Timestamp *int64
}

// Service implements category operations.
type Service struct {
	repo      Repository
	positions *position.Manager
	ids       id.Allocator
	txm       tx.Manager
	clock     clock.Clock
}

// NewService creates a category service.
func NewService(repo Repository, positions *position.Manager, ids id.Allocator, txm tx.Manager, c clock.Clock) *Service {
	return &Service{
		repo:      repo,
		positions: positions,
		ids:       ids,
		txm:       txm,
		clock:     c,
	}
}

// List returns all categories ordered by position.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

// Get returns a single category.
func (s *Service) Get(ctx context.Context, categoryID id.ID) (Category, error) {
	return s.repo.Get(ctx, categoryID)
}

// Exists reports whether the category exists.
func (s *Service) Exists(ctx context.Context, categoryID id.ID) (bool, error) {
	return s.repo.Exists(ctx, categoryID)
}

// Create appends a new category to the end of the list.
func (s *Service) Create(ctx context.Context, in CreateInput) (Category, error) {
	var created Category
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.positions.Lock(ctx, Scope()); err != nil {
			return err
		}
		pos, err := s.positions.Next(ctx, Scope())
		if err != nil {
			return err
		}
		categoryID, err := s.ids.Next(ctx, id.KindCategory)
		if err != nil {
			return fmt.Errorf("allocate category id: %w", err)
		}

		created = Category{
			ID:        categoryID,
			Name:      in.Name,
			Position:  pos,
			Timestamp: revision.Initial(in.Timestamp, clock.Unix(s.clock)),
		}
		return s.repo.Create(ctx, created)
	})
	if err != nil {
		return Category{}, err
	}
	return created, nil
}

// Update renames the category unless the client's timestamp is older than
// the stored one. applied is false for such stale writes.
func (s *Service) Update(ctx context.Context, categoryID id.ID, in UpdateInput) (applied bool, err error) {
	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, categoryID)
		if err != nil {
			return err
		}

		ts, ok := revision.Resolve(current.Timestamp, in.Timestamp, clock.Unix(s.clock))
		if !ok {
			logger.Debug(ctx, "stale category update ignored", "category_id", categoryID, "stored", current.Timestamp)
			return nil
		}

		current.Name = in.Name
		current.Timestamp = ts
		applied = true
		return s.repo.Update(ctx, current)
	})
	return applied, err
}

// Move swaps the category with its neighbor and returns both categories,
// the moved one first.
func (s *Service) Move(ctx context.Context, categoryID id.ID, dir position.Direction) ([]Category, error) {
	var result []Category
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		// Scope lock before row lock, the order Swap locks the neighbor in.
		if err := s.positions.Lock(ctx, Scope()); err != nil {
			return err
		}
		current, err := s.repo.GetForUpdate(ctx, categoryID)
		if err != nil {
			return err
		}

		swapped, err := s.positions.Swap(ctx, Scope(), current.Slot(), dir)
		if errors.Is(err, position.ErrNoNeighbor) {
			return apperror.NewBadRequest(fmt.Sprintf("category cannot be moved %s", dir)).
				WithDetail("id", categoryID)
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
		result = []Category{moved, displaced}
		return nil
	})
	return result, err
}
