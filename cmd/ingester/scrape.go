package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/mane/server/catalog/products"
	"codeberg.org/mane/server/internal/config"
	"codeberg.org/mane/server/internal/logger"
	"codeberg.org/mane/server/internal/scraper"
)

// scrapes the storefront catalog and upserts every parsed product
func ScrapeCatalog(cfg *config.Config, db *pgxpool.Pool, flags config.ScrapeFlags) error {
	ctx := context.Background()
	logger.Info("starting catalog scrape", "min_products", flags.MinProducts)

	scraperClient := scraper.NewClient()

	scraped, err := scraperClient.ScrapeCatalog(ctx, flags.MinProducts)
	if err != nil {
		return fmt.Errorf("failed to scrape catalog: %w", err)
	}

	logger.Info("scraped products", "count", len(scraped))

	productRepo := products.NewRepository(db)

	upserted := 0
	failed := 0

	for _, req := range scraped {
		if _, err := productRepo.Upsert(ctx, req); err != nil {
			logger.Warn("failed to upsert product", "external_id", req.ExternalID, "error", err)
			failed++

			continue
		}

		upserted++
	}

	if upserted == 0 {
		return fmt.Errorf("no products upserted (%d failed)", failed)
	}

	// verify against the stored catalog
	total, err := productRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify product count: %w", err)
	}

	logger.Info("successfully ingested catalog",
		"upserted", upserted,
		"failed", failed,
		"total_products", total,
	)

	return nil
}
