package v2

import (
	"github.com/gin-gonic/gin"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain/article"
	"inventory/internal/domain/category"
	"inventory/internal/domain/position"
	"inventory/internal/infrastructure/http/v3/dto"
	"inventory/internal/infrastructure/http/v3/handlers"
)

// noNeighbor turns the 400 of a move without neighbor into the 404 this
// version answers with.
func noNeighbor(err error, entity string, recordID id.ID) error {
	if apperror.IsBadRequest(err) {
		return apperror.NewNotFound(entity+" neighbor", recordID).WithCause(err)
	}
	return err
}

// CategoryHandler serves /categories.
type CategoryHandler struct {
	*handlers.BaseHandler
	categories *category.Service
	articles   *article.Service
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
	h.OK(c, FromArticles(list))
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

// Update handles PUT /categories/:id.
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
	if _, err := h.categories.Move(c.Request.Context(), categoryID, dir); err != nil {
		h.Error(c, noNeighbor(err, "category", categoryID))
		return
	}
	h.NoContent(c)
}

// ArticleHandler serves /articles.
type ArticleHandler struct {
	*handlers.BaseHandler
	articles *article.Service
}

// List handles GET /articles.
func (h *ArticleHandler) List(c *gin.Context) {
	list, err := h.articles.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, FromArticles(list))
}

// Get handles GET /articles/:id.
func (h *ArticleHandler) Get(c *gin.Context) {
	articleID, ok := h.ParseID(c)
	if !ok {
		return
	}
	a, err := h.articles.Get(c.Request.Context(), articleID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, FromArticle(a))
}

// Create handles POST /articles.
func (h *ArticleHandler) Create(c *gin.Context) {
	var req ArticleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if _, err := h.articles.Create(c.Request.Context(), req.ToCreateInput()); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Update handles PUT /articles/:id. Overwriting a single stock figure would
// merge the article's lots, so only v3 updates articles.
func (h *ArticleHandler) Update(c *gin.Context) {
	h.Error(c, apperror.NewNotImplemented("article updates need API v3"))
}

// Increment handles PUT /articles/:id/increment.
func (h *ArticleHandler) Increment(c *gin.Context) { h.adjust(c, 1) }

// Decrement handles PUT /articles/:id/decrement.
func (h *ArticleHandler) Decrement(c *gin.Context) { h.adjust(c, -1) }

func (h *ArticleHandler) adjust(c *gin.Context, delta int64) {
	articleID, ok := h.ParseID(c)
	if !ok {
		return
	}
	a, err := h.articles.AdjustStock(c.Request.Context(), articleID, delta)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, FromArticle(a))
}

// Reset handles PUT /articles/:id/reset: all lots are dropped, leaving zero
// stock and no best-before date.
func (h *ArticleHandler) Reset(c *gin.Context) {
	articleID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.ResetRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}
	a, err := h.articles.Reset(c.Request.Context(), articleID, article.ResetInput{Timestamp: req.Timestamp})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, FromArticle(a))
}

// MoveUp handles PUT /articles/:id/move-up.
func (h *ArticleHandler) MoveUp(c *gin.Context) { h.move(c, position.Up) }

// MoveDown handles PUT /articles/:id/move-down.
func (h *ArticleHandler) MoveDown(c *gin.Context) { h.move(c, position.Down) }

func (h *ArticleHandler) move(c *gin.Context, dir position.Direction) {
	articleID, ok := h.ParseID(c)
	if !ok {
		return
	}
	pair, err := h.articles.Move(c.Request.Context(), articleID, dir)
	if err != nil {
		h.Error(c, noNeighbor(err, "article", articleID))
		return
	}
	h.OK(c, FromArticles(pair))
}
