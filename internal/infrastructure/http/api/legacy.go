package api

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
)

// retiredAPI lists the entities of a retired version and the actions each
// of them accepted.
type retiredAPI map[string][]string

// v1 kept uncategorized items in a table of their own, which the shared
// store has no place for.
var retiredV1 = retiredAPI{
	"inventory": nil,
	"item":      {"increment", "decrement", "reset-stock", "move-up", "move-down"},
}

// OPTIONS stays with the preflight catch-all.
var retiredMethods = []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete}

// registerRetired answers every path the retired version knew with 501.
func registerRetired(rg *gin.RouterGroup, version string, known retiredAPI) {
	h := func(c *gin.Context) {
		path := c.Request.URL.Path
		actions, ok := known[c.Param("entity")]
		if !ok {
			abort(c, apperror.NewRouteNotFound(path))
			return
		}
		if raw := c.Param("id"); raw != "" {
			if _, err := id.Parse(raw); err != nil {
				abort(c, apperror.NewRouteNotFound(path))
				return
			}
		}
		if action := c.Param("action"); action != "" && !slices.Contains(actions, action) {
			abort(c, apperror.NewRouteNotFound(path))
			return
		}
		abort(c, apperror.NewNotImplemented("API "+version+" is retired, use v3"))
	}

	g := rg.Group("/" + version)
	for _, method := range retiredMethods {
		g.Handle(method, "/:entity", h)
		g.Handle(method, "/:entity/:id", h)
		g.Handle(method, "/:entity/:id/:action", h)
	}
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
