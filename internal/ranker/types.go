package ranker

import (
	"context"

	"codeberg.org/mane/server/catalog/products"
)

// Strategy selects the retrieval algorithm for a deployment. The two
// strategies are alternatives, never combined; the only crossover is the
// vector strategy falling back to text when no embeddings exist.
type Strategy string

const (
	StrategyText   Strategy = "text"
	StrategyVector Strategy = "vector"
)

// ScoringMode controls how the text ranker counts keyword hits.
type ScoringMode string

const (
	// ModePresence is the default: a keyword that occurs anywhere in a field
	// contributes that field's weight once, however many times it occurs.
	ModePresence ScoringMode = "presence"

	// ModeFrequency sums substring occurrence counts of each keyword over a
	// single concatenated haystack, unweighted. Kept for parity with earlier
	// catalog deployments; see keyword_test.go for the behavioral contrast.
	ModeFrequency ScoringMode = "frequency"
)

// field weights for presence scoring
const (
	weightTitle       = 10
	weightDescription = 3
	weightFeatures    = 2
	weightTags        = 2
)

// RankedResult pairs a product with a strategy-specific relevance score.
// Scores are not comparable across strategies: the text score grows with
// relevance, the vector score is a distance and shrinks.
type RankedResult struct {
	Product products.Product
	Score   float64
}

// CatalogReader is the slice of the product repository the rankers consume.
type CatalogReader interface {
	ListAll(ctx context.Context) ([]products.Product, error)
	NearestNeighbors(ctx context.Context, queryVector []float32, k int) ([]products.NearestResult, error)
}

// Config holds ranker construction options; zero values select the defaults
// (text strategy, presence scoring, built-in synonym table).
type Config struct {
	Strategy Strategy
	Mode     ScoringMode
	Synonyms Table
}
