package ranker

import (
	"context"
	"testing"

	"codeberg.org/mane/server/catalog/products"
)

// implements CatalogReader for testing
type mockCatalog struct {
	listAllFunc          func(ctx context.Context) ([]products.Product, error)
	nearestNeighborsFunc func(ctx context.Context, queryVector []float32, k int) ([]products.NearestResult, error)
}

func (m *mockCatalog) ListAll(ctx context.Context) ([]products.Product, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}

	return nil, nil
}

func (m *mockCatalog) NearestNeighbors(ctx context.Context, queryVector []float32, k int) ([]products.NearestResult, error) {
	if m.nearestNeighborsFunc != nil {
		return m.nearestNeighborsFunc(ctx, queryVector, k)
	}

	return nil, nil
}

func hairCatalog() []products.Product {
	return []products.Product{
		{
			ID:          1,
			Title:       "Anti-Dandruff Shampoo",
			Description: "Fights flakes and soothes an itchy scalp",
			Features:    "anti-dandruff | scalp care",
			Tags:        []string{"dandruff", "shampoo"},
		},
		{
			ID:          2,
			Title:       "Dry Hair Serum",
			Description: "Deep moisture and hydration for dry, damaged hair",
			Features:    "moisture lock | nourishing oils",
			Tags:        []string{"dry", "serum"},
		},
		{
			ID:          3,
			Title:       "Volumizing Conditioner",
			Description: "Adds thickness and volume to thin hair",
			Features:    "volumizing",
			Tags:        []string{"volume"},
		},
		{
			ID:          4,
			Title:       "Hair Growth Tonic",
			Description: "Minoxidil-based serum that reduces hair fall",
			Features:    "growth | minoxidil",
			Tags:        []string{"growth", "hair fall"},
		},
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("My Hair IS so dry")

	want := []string{"hair", "dry"}

	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}

	for i, tok := range tokens {
		if tok != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], tok)
		}
	}
}

func TestTokenizeEmptyQuery(t *testing.T) {
	if tokens := Tokenize("   "); len(tokens) != 0 {
		t.Errorf("expected no tokens, got %v", tokens)
	}

	// every token at or below the length cutoff
	if tokens := Tokenize("a an is it"); len(tokens) != 0 {
		t.Errorf("expected no tokens, got %v", tokens)
	}
}

func TestRankKeywordsDryScalpScenario(t *testing.T) {
	results := rankKeywords(hairCatalog(), "my scalp is dry", 3, DefaultTable(), ModePresence)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// "dry" hits the serum's title plus expanded moisture/hydration terms
	if results[0].Product.ID != 2 {
		t.Errorf("expected Dry Hair Serum first, got product %d", results[0].Product.ID)
	}

	if results[0].Score <= 0 {
		t.Errorf("expected positive score for top result, got %f", results[0].Score)
	}
}

func TestRankKeywordsCaseInsensitive(t *testing.T) {
	catalog := hairCatalog()

	lower := rankKeywords(catalog, "dandruff shampoo", 2, DefaultTable(), ModePresence)
	upper := rankKeywords(catalog, "DANDRUFF Shampoo", 2, DefaultTable(), ModePresence)

	if len(lower) != len(upper) {
		t.Fatalf("expected identical result counts, got %d and %d", len(lower), len(upper))
	}

	for i := range lower {
		if lower[i].Product.ID != upper[i].Product.ID {
			t.Errorf("result %d: expected product %d, got %d", i, lower[i].Product.ID, upper[i].Product.ID)
		}

		if lower[i].Score != upper[i].Score {
			t.Errorf("result %d: expected score %f, got %f", i, lower[i].Score, upper[i].Score)
		}
	}
}

func TestRankKeywordsBackfill(t *testing.T) {
	// a nonsense query matches nothing, so the first k products backfill in
	// catalog order with zero scores
	results := rankKeywords(hairCatalog(), "xylophone quartz", 3, DefaultTable(), ModePresence)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for i, r := range results {
		if r.Score != 0 {
			t.Errorf("result %d: expected zero score, got %f", i, r.Score)
		}

		if r.Product.ID != i+1 {
			t.Errorf("result %d: expected product %d, got %d", i, i+1, r.Product.ID)
		}
	}
}

func TestRankKeywordsPartialBackfill(t *testing.T) {
	// one match plus backfill: matched product leads, unmatched follow in
	// catalog order without duplicating the match
	results := rankKeywords(hairCatalog(), "volumizing", 3, DefaultTable(), ModePresence)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].Product.ID != 3 {
		t.Errorf("expected Volumizing Conditioner first, got product %d", results[0].Product.ID)
	}

	if results[1].Product.ID != 1 || results[2].Product.ID != 2 {
		t.Errorf("expected backfill products 1, 2; got %d, %d", results[1].Product.ID, results[2].Product.ID)
	}
}

func TestRankKeywordsNeverExceedsK(t *testing.T) {
	results := rankKeywords(hairCatalog(), "hair", 2, DefaultTable(), ModePresence)

	if len(results) > 2 {
		t.Errorf("expected at most 2 results, got %d", len(results))
	}
}

func TestRankKeywordsSmallCatalog(t *testing.T) {
	catalog := hairCatalog()[:2]

	results := rankKeywords(catalog, "hair", 10, DefaultTable(), ModePresence)

	if len(results) != 2 {
		t.Errorf("expected 2 results from a 2-product catalog, got %d", len(results))
	}
}

func TestRankKeywordsEmptyCatalog(t *testing.T) {
	if results := rankKeywords(nil, "dry hair", 5, DefaultTable(), ModePresence); results != nil {
		t.Errorf("expected nil results for empty catalog, got %v", results)
	}
}

func TestRankKeywordsZeroK(t *testing.T) {
	if results := rankKeywords(hairCatalog(), "dry hair", 0, DefaultTable(), ModePresence); results != nil {
		t.Errorf("expected nil results for k=0, got %v", results)
	}
}

func TestRankKeywordsExpansionIdempotent(t *testing.T) {
	catalog := hairCatalog()

	// a query already containing an expansion term scores the same as one
	// that only contains the trigger, because Expand dedupes
	withTrigger := rankKeywords(catalog, "dry moisture", 4, DefaultTable(), ModePresence)
	triggerOnly := rankKeywords(catalog, "dry", 4, DefaultTable(), ModePresence)

	if withTrigger[0].Product.ID != triggerOnly[0].Product.ID {
		t.Errorf("expected same top product, got %d and %d",
			withTrigger[0].Product.ID, triggerOnly[0].Product.ID)
	}
}

func TestPresenceScoreFieldWeights(t *testing.T) {
	p := products.Product{
		Title:       "Keratin Smooth Serum",
		Description: "keratin treatment",
		Features:    "keratin",
		Tags:        []string{"keratin"},
	}

	score := presenceScore(p, []string{"keratin"})

	want := float64(weightTitle + weightDescription + weightFeatures + weightTags)
	if score != want {
		t.Errorf("expected score %f, got %f", want, score)
	}
}

func TestPresenceScoreIgnoresRepeats(t *testing.T) {
	p := products.Product{
		Title: "Serum serum serum",
	}

	score := presenceScore(p, []string{"serum"})

	if score != weightTitle {
		t.Errorf("expected single title weight %d, got %f", weightTitle, score)
	}
}

func TestFrequencyScoreCountsRepeats(t *testing.T) {
	p := products.Product{
		Title:       "Serum serum",
		Description: "a serum for hair",
	}

	score := frequencyScore(p, []string{"serum"})

	if score != 3 {
		t.Errorf("expected frequency 3, got %f", score)
	}
}

func TestTextRankerRank(t *testing.T) {
	catalog := &mockCatalog{
		listAllFunc: func(_ context.Context) ([]products.Product, error) {
			return hairCatalog(), nil
		},
	}

	ranker := NewTextRanker(catalog, nil, "")

	results, err := ranker.Rank(context.Background(), "dandruff", 2)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].Product.ID != 1 {
		t.Errorf("expected Anti-Dandruff Shampoo first, got product %d", results[0].Product.ID)
	}
}
