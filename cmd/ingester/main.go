package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/mane/server/internal/config"
	"codeberg.org/mane/server/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ingester <command> [options]")
		fmt.Println("Commands:")
		fmt.Println("  scrape  - scrape the storefront catalog into the database")
		fmt.Println("  embed   - generate embeddings for unenriched products")
		fmt.Println("  all     - scrape, then embed")
		fmt.Println("\nOptions:")
		fmt.Println("  --min-products <n>  - minimum products to scrape (scrape)")
		fmt.Println("  --batch <n>         - products per embedding batch (embed)")
		os.Exit(1)
	}

	command := os.Args[1]

	// load environment variables
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	// connect to database
	ctx := context.Background()
	db, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("connected to database")

	// route to appropriate command
	switch command {
	case "scrape":
		flags := config.ParseScrapeFlags()
		if err := ScrapeCatalog(cfg, db, flags); err != nil {
			logger.Fatal("failed to scrape catalog", "error", err)
		}

	case "embed":
		flags := config.ParseEmbedFlags()
		if err := EmbedProducts(cfg, db, flags); err != nil {
			logger.Fatal("failed to embed products", "error", err)
		}

	case "all":
		logger.Info("ingesting all data (scrape, embed)")

		if err := ScrapeCatalog(cfg, db, config.DefaultScrapeFlags()); err != nil {
			logger.Fatal("failed to scrape catalog", "error", err)
		}

		if err := EmbedProducts(cfg, db, config.DefaultEmbedFlags()); err != nil {
			logger.Fatal("failed to embed products", "error", err)
		}

		logger.Info("successfully ingested all data")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}
