package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/mane/server/catalog/products"
	"codeberg.org/mane/server/internal/assistant"
	"codeberg.org/mane/server/internal/config"
	"codeberg.org/mane/server/internal/enrichment"
	"codeberg.org/mane/server/internal/llm"
	"codeberg.org/mane/server/internal/logger"
	"codeberg.org/mane/server/internal/ranker"
	"codeberg.org/mane/server/internal/scraper"
)

// creates and configures all service clients
func InitializeServices(cfg *config.Config, db *pgxpool.Pool) (*Services, error) {
	llmClient, err := llm.NewLLM(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	productRepo := products.NewRepository(db)

	rankerClient := ranker.New(rankerConfig(cfg), productRepo, llmClient)
	assistantClient := assistant.New(rankerClient, llmClient)
	scraperClient := scraper.NewClient()
	enricher := enrichment.New(productRepo, llmClient)

	return &Services{
		Assistant: assistantClient,
		LLM:       llmClient,
		Ranker:    rankerClient,
		Scraper:   scraperClient,
		Enricher:  enricher,
	}, nil
}

// maps environment configuration to ranker options; a broken synonym file
// falls back to the built-in table
func rankerConfig(cfg *config.Config) ranker.Config {
	synonyms := ranker.DefaultTable()

	if cfg.SynonymsPath != "" {
		loaded, err := ranker.LoadTable(cfg.SynonymsPath)
		if err != nil {
			logger.ErrorErr(err, "failed to load synonym table, using built-in defaults", "path", cfg.SynonymsPath)
		} else {
			synonyms = loaded
		}
	}

	return ranker.Config{
		Strategy: ranker.Strategy(cfg.RankerStrategy),
		Mode:     ranker.ScoringMode(cfg.ScoringMode),
		Synonyms: synonyms,
	}
}
