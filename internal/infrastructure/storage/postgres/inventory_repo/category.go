package inventory_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain/category"
	"inventory/internal/infrastructure/storage/postgres"
)

const tableCategories = "categories"

var categoryColumns = postgres.Columns[category.Category]()

var _ category.Repository = (*CategoryRepo)(nil)

// CategoryRepo stores categories.
type CategoryRepo struct {
	base
}

// NewCategoryRepo creates a category repository.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{base{txm: txm}}
}

func (r *CategoryRepo) selectQuery() squirrel.SelectBuilder {
	return r.Builder().Select(categoryColumns...).From(tableCategories)
}

func (r *CategoryRepo) List(ctx context.Context) ([]category.Category, error) {
	out := make([]category.Category, 0)
	if err := r.selectAll(ctx, &out, r.selectQuery().OrderBy(colPosition)); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (r *CategoryRepo) Get(ctx context.Context, categoryID id.ID) (category.Category, error) {
	var c category.Category
	q := r.selectQuery().Where(squirrel.Eq{"id": categoryID})
	if err := r.get(ctx, &c, q, apperror.NewNotFound("category", categoryID)); err != nil {
		return c, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepo) GetForUpdate(ctx context.Context, categoryID id.ID) (category.Category, error) {
	var c category.Category
	q := r.selectQuery().Where(squirrel.Eq{"id": categoryID}).Suffix("FOR UPDATE")
	if err := r.get(ctx, &c, q, apperror.NewNotFound("category", categoryID)); err != nil {
		return c, fmt.Errorf("lock category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepo) Exists(ctx context.Context, categoryID id.ID) (bool, error) {
	return r.exists(ctx, tableCategories, squirrel.Eq{"id": categoryID})
}

func (r *CategoryRepo) Create(ctx context.Context, c category.Category) error {
	if _, err := r.exec(ctx, r.Builder().Insert(tableCategories).SetMap(postgres.Values(c))); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) Update(ctx context.Context, c category.Category) error {
	q := r.Builder().Update(tableCategories).
		Set("name", c.Name).
		Set(colTimestamp, c.Timestamp).
		Where(squirrel.Eq{"id": c.ID})

	n, err := r.exec(ctx, q)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n == 0 {
		return apperror.NewNotFound("category", c.ID)
	}
	return nil
}
