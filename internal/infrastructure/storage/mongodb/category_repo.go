package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

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

func (r *CategoryRepo) List(ctx context.Context) ([]category.Category, error) {
	out, err := findAll[category.Category](ctx, r.db.collection(collCategories), bson.M{},
		options.Find().SetSort(ascending("position")))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (r *CategoryRepo) Get(ctx context.Context, categoryID id.ID) (category.Category, error) {
	var c category.Category
	err := findOne(ctx, r.db.collection(collCategories), bson.M{"_id": categoryID}, &c,
		apperror.NewNotFound("category", categoryID))
	if err != nil {
		return c, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// GetForUpdate reads like Get. Concurrent writers to the document abort
// with a write conflict and are retried by the transaction.
func (r *CategoryRepo) GetForUpdate(ctx context.Context, categoryID id.ID) (category.Category, error) {
	return r.Get(ctx, categoryID)
}

func (r *CategoryRepo) Exists(ctx context.Context, categoryID id.ID) (bool, error) {
	return exists(ctx, r.db.collection(collCategories), bson.M{"_id": categoryID})
}

func (r *CategoryRepo) Create(ctx context.Context, c category.Category) error {
	if _, err := r.db.collection(collCategories).InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) Update(ctx context.Context, c category.Category) error {
	res, err := r.db.collection(collCategories).UpdateByID(ctx, c.ID, bson.M{
		"$set": bson.M{"name": c.Name, "timestamp": c.Timestamp},
	})
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFound("category", c.ID)
	}
	return nil
}
