package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/mane/server/catalog/products"
	"codeberg.org/mane/server/internal/assistant"
	"codeberg.org/mane/server/internal/config"
	"codeberg.org/mane/server/internal/enrichment"
	"codeberg.org/mane/server/internal/llm"
	"codeberg.org/mane/server/internal/ranker"
	"codeberg.org/mane/server/internal/scraper"
)

// holds all dependencies and state for the API server
type Server struct {
	db          *pgxpool.Pool
	config      *config.Config
	productRepo *products.Repository
	services    *Services
	router      *gin.Engine
}

// holds the retrieval and generation service clients
type Services struct {
	Assistant *assistant.Assistant
	LLM       llm.LLM
	Ranker    *ranker.Ranker
	Scraper   *scraper.Client
	Enricher  *enrichment.Enricher
}
