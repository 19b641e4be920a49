// Package main provides the schema migration CLI for the postgres backend.
// Usage: migrate up
//        migrate down
//        migrate version
package main

import (
	"fmt"
	"os"

	"inventory/internal/config"
	"inventory/internal/infrastructure/storage/postgres"
	"inventory/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Storage.Driver != config.DriverPostgres {
		fmt.Printf("Error: migrations apply to the postgres driver only (configured: %s)\n", cfg.Storage.Driver)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Development: true})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	m, err := postgres.NewMigrator(cfg.Database.URI, log)
	if err != nil {
		log.Fatalw("failed to create migrator", "error", err)
	}
	defer func() { _ = m.Close() }()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = m.Version()
		if err == nil {
			fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		}
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatalw("migration failed", "command", cmd, "error", err)
	}
}

func printUsage() {
	fmt.Println(`Inventory schema migrations

Usage:
  migrate <command>

Commands:
  up        Apply all pending migrations
  down      Roll back all migrations
  version   Print the current schema version
  help      Show this help

Environment Variables:
  DATABASE_URI   PostgreSQL connection string (required)`)
}
