package enrichment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codeberg.org/mane/server/catalog/products"
	"codeberg.org/mane/server/internal/llm"
	"codeberg.org/mane/server/internal/logger"
)

const (
	// minimum delay between consecutive embedding calls
	defaultInterval = 2 * time.Second

	// longer pause after a failed call
	defaultFailureBackoff = 5 * time.Second

	embeddedDescriptionChars = 500
	embeddedTagCount         = 10
)

// the slice of the product repository the enricher needs
type CatalogStore interface {
	ListWithoutEmbedding(ctx context.Context, limit int) ([]products.Product, error)
	UpdateEmbedding(ctx context.Context, id int, embedding []float32) error
	CountWithoutEmbedding(ctx context.Context) (int, error)
}

// Enricher computes and stores embeddings for unenriched products, pacing
// calls to the embedding provider. Enrichment may lag ingestion indefinitely;
// a catalog can run forever without embeddings on the text strategy.
type Enricher struct {
	catalog        CatalogStore
	embedder       llm.Embedder
	interval       time.Duration
	failureBackoff time.Duration
}

type Result struct {
	Enriched  int `json:"enriched"`
	Failed    int `json:"failed"`
	Remaining int `json:"remaining"`
}

func New(catalog CatalogStore, embedder llm.Embedder) *Enricher {
	return &Enricher{
		catalog:        catalog,
		embedder:       embedder,
		interval:       defaultInterval,
		failureBackoff: defaultFailureBackoff,
	}
}

// SetPacing overrides the inter-call interval and post-failure backoff.
func (e *Enricher) SetPacing(interval, failureBackoff time.Duration) {
	e.interval = interval
	e.failureBackoff = failureBackoff
}

// EnrichBatch embeds up to batchSize unenriched products. Individual
// failures are counted, not fatal; the batch continues after a longer pause.
func (e *Enricher) EnrichBatch(ctx context.Context, batchSize int) (*Result, error) {
	pending, err := e.catalog.ListWithoutEmbedding(ctx, batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list unenriched products: %w", err)
	}

	result := &Result{}
	delay := time.Duration(0)

	for _, p := range pending {
		if delay > 0 {
			if err := sleepCtx(ctx, delay); err != nil {
				return result, err
			}
		}

		embedding, err := e.embedder.GenerateEmbedding(ctx, BuildProductText(p))
		if err != nil {
			logger.Warn("embedding generation failed", "product_id", p.ID, "error", err)

			result.Failed++
			delay = e.failureBackoff

			continue
		}

		if err := e.catalog.UpdateEmbedding(ctx, p.ID, embedding); err != nil {
			logger.Warn("failed to store embedding", "product_id", p.ID, "error", err)

			result.Failed++
			delay = e.failureBackoff

			continue
		}

		result.Enriched++
		delay = e.interval
	}

	remaining, err := e.catalog.CountWithoutEmbedding(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count unenriched products: %w", err)
	}

	result.Remaining = remaining

	return result, nil
}

// BuildProductText renders the fields embedded for a product, pipe-joined so
// field boundaries survive in the embedding input.
func BuildProductText(p products.Product) string {
	category := p.Category
	if category == "" {
		category = "Hair Care"
	}

	parts := []string{
		fmt.Sprintf("Product: %s", p.Title),
		fmt.Sprintf("Category: %s", category),
		fmt.Sprintf("Type: %s", p.ProductType),
		fmt.Sprintf("Price: ₹%.2f", p.Price),
	}

	if p.Description != "" {
		description := p.Description
		if runes := []rune(description); len(runes) > embeddedDescriptionChars {
			description = string(runes[:embeddedDescriptionChars])
		}

		parts = append(parts, fmt.Sprintf("Description: %s", description))
	}

	if p.Features != "" {
		parts = append(parts, fmt.Sprintf("Features: %s", p.Features))
	}

	if len(p.Tags) > 0 {
		tags := p.Tags
		if len(tags) > embeddedTagCount {
			tags = tags[:embeddedTagCount]
		}

		parts = append(parts, fmt.Sprintf("Tags: %s", strings.Join(tags, ", ")))
	}

	return strings.Join(parts, " | ")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
