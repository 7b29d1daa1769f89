package ranker

import (
	"context"

	"codeberg.org/mane/server/internal/llm"
)

// Ranker is the deployment-facing retrieval entry point: one configured
// strategy per deployment, with the vector strategy degrading to keywords
// when embeddings are unavailable fleet-wide.
type Ranker struct {
	strategy Strategy
	text     *TextRanker
	vector   *VectorRanker
}

func New(cfg Config, catalog CatalogReader, embedder llm.Embedder) *Ranker {
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyText
	}

	r := &Ranker{
		strategy: cfg.Strategy,
		text:     NewTextRanker(catalog, cfg.Synonyms, cfg.Mode),
	}

	if embedder != nil {
		r.vector = NewVectorRanker(catalog, embedder)
	}

	return r
}

// Retrieve returns the top k products for the query using the configured
// strategy.
func (r *Ranker) Retrieve(ctx context.Context, query string, k int) ([]RankedResult, error) {
	if r.strategy == StrategyVector && r.vector != nil {
		results, err := r.vector.Rank(ctx, query, k)
		if err != nil {
			return nil, err
		}

		if len(results) > 0 {
			return results, nil
		}

		// no enriched products, or the embedding model is unavailable:
		// fall back to keyword retrieval rather than answering blind
	}

	return r.text.Rank(ctx, query, k)
}
