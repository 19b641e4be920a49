// Package v3 provides HTTP API version 3.
package v3

import (
	"github.com/gin-gonic/gin"

	"inventory/internal/app"
	"inventory/internal/infrastructure/http/v3/handlers"
)

// RegisterRoutes mounts the version 3 endpoints on rg.
func RegisterRoutes(rg *gin.RouterGroup, svc *app.Services) {
	base := handlers.NewBaseHandler()

	registerCategoryRoutes(rg, handlers.NewCategoryHandler(base, svc.Categories, svc.Articles))
	registerArticleRoutes(rg, handlers.NewArticleHandler(base, svc.Articles))
	registerLotRoutes(rg, handlers.NewLotHandler(base, svc.Lots))

	inventory := handlers.NewInventoryHandler(base, svc.Stocktaking)
	rg.GET("/inventory", inventory.Status)
	rg.PUT("/inventory/start", inventory.Start)
	rg.PUT("/inventory/stop", inventory.Stop)

	rg.GET("/gtin/:gtin", handlers.NewGTINHandler(base, svc.GTIN).Lookup)
}

func registerCategoryRoutes(rg *gin.RouterGroup, h *handlers.CategoryHandler) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", h.Create)
		categories.GET("/:id", h.Get)
		categories.PUT("/:id", h.Update)
		categories.GET("/:id/articles", h.Articles)
		categories.PUT("/:id/move-up", h.MoveUp)
		categories.PUT("/:id/move-down", h.MoveDown)
	}
}

func registerArticleRoutes(rg *gin.RouterGroup, h *handlers.ArticleHandler) {
	articles := rg.Group("/articles")
	{
		articles.GET("", h.List)
		articles.POST("", h.Create)
		articles.GET("/:id", h.Get)
		articles.PUT("/:id", h.Update)
		articles.PUT("/:id/reset", h.Reset)
		articles.PUT("/:id/move-up", h.MoveUp)
		articles.PUT("/:id/move-down", h.MoveDown)
	}
}

func registerLotRoutes(rg *gin.RouterGroup, h *handlers.LotHandler) {
	lots := rg.Group("/lots")
	{
		lots.POST("", h.Create)
		lots.PUT("/:id", h.Update)
		lots.PUT("/:id/increment", h.Increment)
		lots.PUT("/:id/decrement", h.Decrement)
		lots.PUT("/:id/move-up", h.MoveUp)
		lots.PUT("/:id/move-down", h.MoveDown)
	}
}
