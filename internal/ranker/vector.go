package ranker

import (
	"context"
	"fmt"

	"codeberg.org/mane/server/internal/llm"
	"codeberg.org/mane/server/internal/logger"
)

// VectorRanker retrieves by embedding distance using the catalog store's
// nearest-neighbor operator. Only enriched products participate; the store
// excludes NULL embeddings in the query itself.
type VectorRanker struct {
	catalog  CatalogReader
	embedder llm.Embedder
}

func NewVectorRanker(catalog CatalogReader, embedder llm.Embedder) *VectorRanker {
	return &VectorRanker{
		catalog:  catalog,
		embedder: embedder,
	}
}

// Rank returns up to k products ordered by ascending embedding distance.
// An unavailable embedding model degrades to an empty result, the same
// outcome as a catalog with no enriched products; the caller decides the
// fallback.
func (r *VectorRanker) Rank(ctx context.Context, query string, k int) ([]RankedResult, error) {
	if k <= 0 {
		return nil, nil
	}

	queryVector, err := r.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		logger.Warn("query embedding failed, vector retrieval degraded to empty", "error", err)
		return nil, nil
	}

	neighbors, err := r.catalog.NearestNeighbors(ctx, queryVector, k)
	if err != nil {
		return nil, fmt.Errorf("nearest-neighbor query failed: %w", err)
	}

	results := make([]RankedResult, 0, len(neighbors))

	for _, n := range neighbors {
		results = append(results, RankedResult{
			Product: n.Product,
			Score:   float64(n.Distance),
		})
	}

	return results, nil
}
