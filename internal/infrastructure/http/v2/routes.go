// Package v2 serves API version 2 on the shared store. Articles are shown
// with a single stock figure summed over their lots.
package v2

import (
	"github.com/gin-gonic/gin"

	"inventory/internal/app"
	"inventory/internal/infrastructure/http/v3/handlers"
)

// RegisterRoutes mounts the version 2 endpoints on rg.
func RegisterRoutes(rg *gin.RouterGroup, svc *app.Services) {
	base := handlers.NewBaseHandler()

	ch := &CategoryHandler{BaseHandler: base, categories: svc.Categories, articles: svc.Articles}
	categories := rg.Group("/categories")
	{
		categories.GET("", ch.List)
		categories.POST("", ch.Create)
		categories.GET("/:id", ch.Get)
		categories.PUT("/:id", ch.Update)
		categories.GET("/:id/articles", ch.Articles)
		categories.PUT("/:id/move-up", ch.MoveUp)
		categories.PUT("/:id/move-down", ch.MoveDown)
	}

	ah := &ArticleHandler{BaseHandler: base, articles: svc.Articles}
	articles := rg.Group("/articles")
	{
		articles.GET("", ah.List)
		articles.POST("", ah.Create)
		articles.GET("/:id", ah.Get)
		articles.PUT("/:id", ah.Update)
		articles.PUT("/:id/increment", ah.Increment)
		articles.PUT("/:id/decrement", ah.Decrement)
		articles.PUT("/:id/reset", ah.Reset)
		articles.PUT("/:id/move-up", ah.MoveUp)
		articles.PUT("/:id/move-down", ah.MoveDown)
	}
}
