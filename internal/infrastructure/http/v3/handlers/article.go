package handlers

import (
	"github.com/gin-gonic/gin"

	"inventory/internal/domain/article"
	"inventory/internal/domain/position"
	"inventory/internal/infrastructure/http/v3/dto"
)

// ArticleHandler serves /articles.
type ArticleHandler struct {
	*BaseHandler
	articles *article.Service
}

// NewArticleHandler creates an article handler.
func NewArticleHandler(base *BaseHandler, articles *article.Service) *ArticleHandler {
	return &ArticleHandler{BaseHandler: base, articles: articles}
}

// List handles GET /articles.
func (h *ArticleHandler) List(c *gin.Context) {
	list, err := h.articles.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromArticles(list))
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
	h.OK(c, dto.FromArticle(a))
}

// Create handles POST /articles.
func (h *ArticleHandler) Create(c *gin.Context) {
	var req dto.ArticleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if _, err := h.articles.Create(c.Request.Context(), req.ToCreateInput()); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Update handles PUT /articles/:id.
func (h *ArticleHandler) Update(c *gin.Context) {
	articleID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.ArticleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if _, err := h.articles.Update(c.Request.Context(), articleID, req.ToUpdateInput()); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Reset handles PUT /articles/:id/reset.
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
	h.OK(c, dto.FromArticle(a))
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
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromArticles(pair))
}
