package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"inventory/internal/core/apperror"
)

var (
	corsMethods = []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete}
	corsHeaders = []string{"authorization", "content-type"}
)

// CORS admits requests from allowedOrigin only. Preflight requests are
// answered here and never reach a handler.
func CORS(allowedOrigin string) gin.HandlerFunc {
	allowMethods := strings.Join(corsMethods, ", ")
	allowHeaders := strings.Join(corsHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			abort(c, apperror.NewBadRequest("missing Origin header"))
			return
		}
		if origin != allowedOrigin {
			abort(c, apperror.NewForbidden("origin not allowed").WithDetail("origin", origin))
			return
		}

		c.Header("Access-Control-Allow-Origin", allowedOrigin)
		c.Header("Vary", "Origin")

		requestMethod := c.GetHeader("Access-Control-Request-Method")
		if c.Request.Method != http.MethodOptions || requestMethod == "" {
			c.Next()
			return
		}

		if !slices.Contains(corsMethods, strings.ToUpper(requestMethod)) {
			abort(c, apperror.NewMethodNotAllowed(requestMethod))
			return
		}
		for _, h := range strings.Split(c.GetHeader("Access-Control-Request-Headers"), ",") {
			h = strings.ToLower(strings.TrimSpace(h))
			if h != "" && !slices.Contains(corsHeaders, h) {
				abort(c, apperror.NewForbidden("header not allowed").WithDetail("header", h))
				return
			}
		}

		c.Header("Access-Control-Allow-Methods", allowMethods)
		c.Header("Access-Control-Allow-Headers", allowHeaders)
		c.AbortWithStatus(http.StatusNoContent)
	}
}
