package ingest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalog "codeberg.org/mane/server/catalog/products"
	"codeberg.org/mane/server/internal/enrichment"
	"codeberg.org/mane/server/internal/errors"
	"codeberg.org/mane/server/internal/logger"
	"codeberg.org/mane/server/internal/scraper"
)

// RunHandler scrapes the storefront catalog and upserts every parsed
// product; individual upsert failures are logged and counted, not fatal
func RunHandler(scraperClient *scraper.Client, productRepo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		minProducts := boundedQueryInt(c, "min_products", defaultMinProducts, maxMinProducts)

		scraped, err := scraperClient.ScrapeCatalog(c.Request.Context(), minProducts)
		if err != nil {
			errors.InternalError(c, "failed to scrape catalog", err)
			return
		}

		upserted := 0
		failed := 0

		for _, req := range scraped {
			if _, err := productRepo.Upsert(c.Request.Context(), req); err != nil {
				logger.ErrorErr(err, "failed to upsert scraped product", "external_id", req.ExternalID)
				failed++

				continue
			}

			upserted++
		}

		c.JSON(http.StatusOK, RunResponse{
			Scraped:  len(scraped),
			Upserted: upserted,
			Failed:   failed,
		})
	}
}

// EmbeddingsHandler embeds one batch of unenriched products
func EmbeddingsHandler(enricher *enrichment.Enricher) gin.HandlerFunc {
	return func(c *gin.Context) {
		batchSize := boundedQueryInt(c, "batch_size", defaultEmbedBatchSize, maxEmbedBatchSize)

		result, err := enricher.EnrichBatch(c.Request.Context(), batchSize)
		if err != nil {
			errors.InternalError(c, "failed to enrich products", err)
			return
		}

		c.JSON(http.StatusOK, EmbeddingsResponse{
			Enriched:  result.Enriched,
			Failed:    result.Failed,
			Remaining: result.Remaining,
		})
	}
}

func boundedQueryInt(c *gin.Context, name string, fallback, max int) int {
	value, _ := strconv.Atoi(c.DefaultQuery(name, "0")) //nolint:errcheck
	if value <= 0 {
		value = fallback
	}

	if value > max {
		value = max
	}

	return value
}
