package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/mane/server/catalog/products"
	"codeberg.org/mane/server/internal/config"
	"codeberg.org/mane/server/internal/enrichment"
	"codeberg.org/mane/server/internal/llm"
	"codeberg.org/mane/server/internal/logger"
)

// generates and stores embeddings for products that do not have one yet
func EmbedProducts(cfg *config.Config, db *pgxpool.Pool, flags config.EmbedFlags) error {
	ctx := context.Background()
	logger.Info("starting embedding enrichment", "batch_size", flags.BatchSize)

	llmClient, err := llm.NewLLM(ctx)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	productRepo := products.NewRepository(db)
	enricher := enrichment.New(productRepo, llmClient)

	result, err := enricher.EnrichBatch(ctx, flags.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to enrich products: %w", err)
	}

	logger.Info("successfully enriched products",
		"enriched", result.Enriched,
		"failed", result.Failed,
		"remaining", result.Remaining,
	)

	return nil
}
