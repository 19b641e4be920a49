// Package api assembles the gin engine: global middleware, health probes
// and the version-dispatching /api tree.
package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"inventory/internal/app"
	"inventory/internal/core/apperror"
	"inventory/internal/infrastructure/http/middleware"
	v2 "inventory/internal/infrastructure/http/v2"
	v3 "inventory/internal/infrastructure/http/v3"
	"inventory/internal/infrastructure/http/v3/dto"
	"inventory/pkg/logger"
)

const apiPrefix = "/api/"

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Services are the domain services behind the handlers
	Services *app.Services

	// Logger for request logging, logger.Default() when nil
	Logger *logger.Logger

	// AllowedOrigin is the only origin admitted by CORS
	AllowedOrigin string

	// Health is pinged by the readiness probe
	Health Pinger
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	dto.RegisterValidators()

	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no CORS, no auth)
	healthHandler := NewHealthHandler(cfg.Health)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	cors := middleware.CORS(cfg.AllowedOrigin)
	auth := middleware.Auth(cfg.Services.Auth)

	api := router.Group("/api", cors)
	{
		// Preflights end in the CORS middleware; a bare OPTIONS names no route.
		api.OPTIONS("/*path", notFound)

		protected := api.Group("", auth)
		v3.RegisterRoutes(protected.Group("/v3"), cfg.Services)
		v2.RegisterRoutes(protected.Group("/v2"), cfg.Services)
		registerRetired(protected, "v1", retiredV1)
	}

	// NoRoute does not run group middleware, so unknown /api paths get
	// CORS and authorization here before answering 404.
	router.NoRoute(apiOnly(cors), apiOnly(auth), notFound)

	return router
}

func apiOnly(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, apiPrefix) {
			h(c)
		}
	}
}

func notFound(c *gin.Context) {
	abort(c, apperror.NewRouteNotFound(c.Request.URL.Path))
}

