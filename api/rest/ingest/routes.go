package ingest

import (
	"github.com/gin-gonic/gin"

	catalog "codeberg.org/mane/server/catalog/products"
	"codeberg.org/mane/server/internal/enrichment"
	"codeberg.org/mane/server/internal/scraper"
)

func RegisterRoutes(router *gin.RouterGroup, scraperClient *scraper.Client, productRepo *catalog.Repository, enricher *enrichment.Enricher) {
	ingestGroup := router.Group("/ingest")
	{
		ingestGroup.POST("/run", RunHandler(scraperClient, productRepo))
		ingestGroup.POST("/embeddings", EmbeddingsHandler(enricher))
	}
}
