// Package main provides a CLI tool for seeding the inventory with an admin
// token and, optionally, demo categories and articles.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"inventory/internal/app"
	"inventory/internal/config"
	"inventory/internal/core/clock"
	"inventory/internal/domain/article"
	"inventory/internal/domain/category"
	"inventory/internal/domain/gtin"
	"inventory/internal/infrastructure/storage"
	"inventory/pkg/logger"
)

// demoArticle is one article of the demo data set.
type demoArticle struct {
	name  string
	size  string
	unit  string
	gtins []string
	lots  []article.LotInput
}

var demoData = []struct {
	category string
	articles []demoArticle
}{
	{"Pantry", []demoArticle{
		{name: "Spaghetti", size: "500", unit: "g", gtins: []string{"8076800195057"},
			lots: []article.LotInput{{BestBefore: "2027-03-31", Stock: 3}}},
		{name: "Basmati rice", size: "1", unit: "kg",
			lots: []article.LotInput{{BestBefore: "2027-08-31", Stock: 1}, {BestBefore: "2028-01-31", Stock: 2}}},
	}},
	{"Fridge", []demoArticle{
		{name: "Whole milk", size: "1", unit: "l", gtins: []string{"7610200337730"},
			lots: []article.LotInput{{BestBefore: "2026-11-02", Stock: 2}}},
		{name: "Butter", size: "250", unit: "g"},
	}},
	{"Cellar", []demoArticle{
		{name: "Mineral water", size: "1.5", unit: "l",
			lots: []article.LotInput{{BestBefore: "2027-12-31", Stock: 12}}},
	}},
}

// noProducts stands in for the product database; seeding never looks up barcodes.
type noProducts struct{}

func (noProducts) Lookup(context.Context, string) (gtin.Product, bool, error) {
	return gtin.Product{}, false, nil
}

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalw("failed to open storage", "error", err)
	}
	defer func() { _ = backend.Close(context.Background()) }()

	log.Infow("connected to storage", "driver", backend.Driver)

	services := app.NewServices(backend, noProducts{}, clock.System{})

	// Seed admin token
	client := os.Getenv("SEED_CLIENT_NAME")
	if client == "" {
		client = "admin"
	}
	token, err := services.Auth.Issue(ctx, client)
	if err != nil {
		log.Fatalw("failed to issue token", "error", err)
	}
	log.Infow("token issued", "client", client)
	fmt.Println(token)

	// Seed demo data if requested
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, services, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedDemoData(ctx context.Context, services *app.Services, log *logger.Logger) error {
	log.Info("seeding demo data...")

	existing, err := services.Categories.List(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	if len(existing) > 0 {
		log.Infow("inventory is not empty, skipping demo data", "categories", len(existing))
		return nil
	}

	for _, group := range demoData {
		cat, err := services.Categories.Create(ctx, category.CreateInput{Name: group.category})
		if err != nil {
			return fmt.Errorf("create category %q: %w", group.category, err)
		}

		for _, a := range group.articles {
			_, err := services.Articles.Create(ctx, article.CreateInput{
				Category: cat.ID,
				Name:     a.name,
				Size:     decimal.RequireFromString(a.size),
				Unit:     a.unit,
				GTINs:    a.gtins,
				Lots:     a.lots,
			})
			if err != nil {
				return fmt.Errorf("create article %q: %w", a.name, err)
			}
		}

		log.Infow("category seeded", "category", group.category, "articles", len(group.articles))
	}
	return nil
}
