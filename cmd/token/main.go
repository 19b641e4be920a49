// Package main issues API tokens.
// Usage: token -name kitchen-tablet
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"inventory/internal/config"
	"inventory/internal/domain/auth"
	"inventory/internal/infrastructure/storage"
)

func main() {
	name := flag.String("name", "", "client name recorded with the token")
	flag.Parse()

	if *name == "" {
		fmt.Println("Error: -name is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Storage.Driver == config.DriverMemory {
		fmt.Println("Error: tokens of the memory driver do not outlive this process")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		fmt.Printf("Error: open storage: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = backend.Close(context.Background()) }()

	token, err := auth.NewService(backend.Tokens).Issue(ctx, *name)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
