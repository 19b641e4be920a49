package memory

import (
	"context"
	"sort"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain/category"
)

var _ category.Repository = (*CategoryRepo)(nil)

// CategoryRepo stores categories.
type CategoryRepo struct {
	db *DB
}

// NewCategoryRepo creates a category repository.
func NewCategoryRepo(db *DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) List(context.Context) ([]category.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]category.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *CategoryRepo) Get(_ context.Context, categoryID id.ID) (category.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.categories[categoryID]
	if !ok {
		return category.Category{}, apperror.NewNotFound("category", categoryID)
	}
	return c, nil
}

func (r *CategoryRepo) GetForUpdate(ctx context.Context, categoryID id.ID) (category.Category, error) {
	return r.Get(ctx, categoryID)
}

func (r *CategoryRepo) Exists(_ context.Context, categoryID id.ID) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	_, ok := r.db.categories[categoryID]
	return ok, nil
}

func (r *CategoryRepo) Create(_ context.Context, c category.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.categories[c.ID] = c
	return nil
}

func (r *CategoryRepo) Update(_ context.Context, c category.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.categories[c.ID]
	if !ok {
		return apperror.NewNotFound("category", c.ID)
	}
	stored.Name = c.Name
	stored.Timestamp = c.Timestamp
	r.db.categories[c.ID] = stored
	return nil
}
