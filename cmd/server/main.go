// Package main is the entry point for the inventory API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"inventory/internal/app"
	"inventory/internal/config"
	"inventory/internal/core/clock"
	"inventory/internal/infrastructure/http/api"
	"inventory/internal/infrastructure/openfoodfacts"
	"inventory/internal/infrastructure/storage"
	"inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Printf("invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.App.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	log.Infow("starting inventory server", "storage", cfg.Storage.Driver)

	// --- Storage ---
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalw("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			log.Warnw("failed to close storage", "error", err)
		}
	}()
	log.Infow("storage ready", "driver", backend.Driver)

	// --- Product database ---
	productsCfg := openfoodfacts.Config{
		BaseURL:   cfg.GTIN.BaseURL,
		Countries: cfg.GTIN.Countries,
		UserAgent: cfg.GTIN.UserAgent,
		Timeout:   cfg.GTIN.Timeout,
	}
	if err := productsCfg.Validate(); err != nil {
		log.Fatalw("invalid product database configuration", "error", err)
	}

	services := app.NewServices(backend, openfoodfacts.NewClient(productsCfg), clock.System{})

	// --- Router ---
	router := api.NewRouter(api.RouterConfig{
		Services:      services,
		Logger:        log,
		AllowedOrigin: cfg.CORS.AllowedOrigin,
		Health:        backend,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", cfg.App.Port, "allowed_origin", cfg.CORS.AllowedOrigin)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
