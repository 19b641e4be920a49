package handlers

import (
	"github.com/gin-gonic/gin"

	"inventory/internal/domain/article"
	"inventory/internal/domain/category"
	"inventory/internal/domain/position"
	"inventory/internal/infrastructure/http/v3/dto"
)

// CategoryHandler serves /categories.
type CategoryHandler struct {
	*BaseHandler
	categories *category.Service
	articles   *article.Service
}

// NewCategoryHandler creates a category handler.
func NewCategoryHandler(base *BaseHandler, categories *category.Service, articles *article.Service) *CategoryHandler {
	return &CategoryHandler{BaseHandler: base, categories: categories, articles: articles}
}

// List handles GET /categories.
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.categories.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromCategories(list))
}

// Get handles GET /categories/:id.
func (h *CategoryHandler) Get(c *gin.Context) {
	categoryID, ok := h.ParseID(c)
	if !ok {
		return
	}
	cat, err := h.categories.Get(c.Request.Context(), categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromCategory(cat))
}

// Articles handles GET /categories/:id/articles.
func (h *CategoryHandler) Articles(c *gin.Context) {
	categoryID, ok := h.ParseID(c)
	if !ok {
		return
	}
	list, err := h.articles.ListByCategory(c.Request.Context(), categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromArticles(list))
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if _, err := h.categories.Create(c.Request.Context(), req.ToCreateInput()); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Update handles PUT /categories/:id. A stale write is answered like an
// applied one.
func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if _, err := h.categories.Update(c.Request.Context(), categoryID, req.ToUpdateInput()); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// MoveUp handles PUT /categories/:id/move-up.
func (h *CategoryHandler) MoveUp(c *gin.Context) { h.move(c, position.Up) }

// MoveDown handles PUT /categories/:id/move-down.
func (h *CategoryHandler) MoveDown(c *gin.Context) { h.move(c, position.Down) }

func (h *CategoryHandler) move(c *gin.Context, dir position.Direction) {
	categoryID, ok := h.ParseID(c)
	if !ok {
		return
	}
	pair, err := h.categories.Move(c.Request.Context(), categoryID, dir)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromCategories(pair))
}
