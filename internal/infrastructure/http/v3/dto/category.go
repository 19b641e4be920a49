package dto

import (
	"inventory/internal/domain/category"
)

// CategoryRequest is the body of POST and PUT /categories.
type CategoryRequest struct {
	Name      *string `json:"name" binding:"required"`
	Timestamp *int64  `json:"timestamp"`
}

// ToCreateInput converts the request for category creation.
func (r *CategoryRequest) ToCreateInput() category.CreateInput {
	return category.CreateInput{Name: *r.Name, Timestamp: r.Timestamp}
}

// ToUpdateInput converts the request for a category update.
func (r *CategoryRequest) ToUpdateInput() category.UpdateInput {
	return category.UpdateInput{Name: *r.Name, Timestamp: r.Timestamp}
}

// CategoryResponse is the JSON form of a category.
type CategoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Position  int64  `json:"position"`
	Timestamp int64  `json:"timestamp"`
}

// FromCategory converts a category.
func FromCategory(c category.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Position:  c.Position,
		Timestamp: c.Timestamp,
	}
}

// CategoriesResponse wraps a list of categories.
type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// FromCategories converts a list of categories.
func FromCategories(list []category.Category) CategoriesResponse {
	out := make([]CategoryResponse, len(list))
	for i, c := range list {
		out[i] = FromCategory(c)
	}
	return CategoriesResponse{Categories: out}
}
