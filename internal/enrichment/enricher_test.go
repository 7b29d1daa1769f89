package enrichment

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"codeberg.org/mane/server/catalog/products"
)

// implements CatalogStore for testing
type mockStore struct {
	pending []products.Product
	updated map[int][]float32
}

func newMockStore(pending ...products.Product) *mockStore {
	return &mockStore{
		pending: pending,
		updated: make(map[int][]float32),
	}
}

func (m *mockStore) ListWithoutEmbedding(_ context.Context, limit int) ([]products.Product, error) {
	if len(m.pending) > limit {
		return m.pending[:limit], nil
	}

	return m.pending, nil
}

func (m *mockStore) UpdateEmbedding(_ context.Context, id int, embedding []float32) error {
	m.updated[id] = embedding
	return nil
}

func (m *mockStore) CountWithoutEmbedding(_ context.Context) (int, error) {
	return len(m.pending) - len(m.updated), nil
}

// implements llm.Embedder for testing
type mockEmbedder struct {
	generateEmbeddingFunc func(ctx context.Context, text string) ([]float32, error)
}

func (m *mockEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.generateEmbeddingFunc != nil {
		return m.generateEmbeddingFunc(ctx, text)
	}

	return make([]float32, 768), nil
}

func (m *mockEmbedder) GenerateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i := range texts {
		embeddings[i] = make([]float32, 768)
	}

	return embeddings, nil
}

func TestEnrichBatch(t *testing.T) {
	store := newMockStore(
		products.Product{ID: 1, Title: "Anti-Dandruff Shampoo", Price: 299},
		products.Product{ID: 2, Title: "Dry Hair Serum", Price: 499},
	)

	enricher := New(store, &mockEmbedder{})
	enricher.SetPacing(0, 0)

	result, err := enricher.EnrichBatch(context.Background(), 10)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result.Enriched != 2 || result.Failed != 0 {
		t.Errorf("expected 2 enriched, 0 failed; got %d, %d", result.Enriched, result.Failed)
	}

	if result.Remaining != 0 {
		t.Errorf("expected 0 remaining, got %d", result.Remaining)
	}

	if len(store.updated[1]) != 768 {
		t.Errorf("expected stored embedding for product 1, got %d dims", len(store.updated[1]))
	}
}

func TestEnrichBatchCountsFailures(t *testing.T) {
	store := newMockStore(
		products.Product{ID: 1, Title: "Anti-Dandruff Shampoo"},
		products.Product{ID: 2, Title: "Dry Hair Serum"},
	)

	embedder := &mockEmbedder{
		generateEmbeddingFunc: func(_ context.Context, text string) ([]float32, error) {
			if strings.Contains(text, "Dandruff") {
				return nil, fmt.Errorf("rate limited")
			}

			return make([]float32, 768), nil
		},
	}

	enricher := New(store, embedder)
	enricher.SetPacing(0, 0)

	result, err := enricher.EnrichBatch(context.Background(), 10)
	if err != nil {
		t.Fatalf("expected failures to be non-fatal, got: %v", err)
	}

	if result.Enriched != 1 || result.Failed != 1 {
		t.Errorf("expected 1 enriched, 1 failed; got %d, %d", result.Enriched, result.Failed)
	}

	if result.Remaining != 1 {
		t.Errorf("expected 1 remaining, got %d", result.Remaining)
	}
}

func TestEnrichBatchRespectsBatchSize(t *testing.T) {
	store := newMockStore(
		products.Product{ID: 1, Title: "One"},
		products.Product{ID: 2, Title: "Two"},
		products.Product{ID: 3, Title: "Three"},
	)

	enricher := New(store, &mockEmbedder{})
	enricher.SetPacing(0, 0)

	result, err := enricher.EnrichBatch(context.Background(), 2)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result.Enriched != 2 {
		t.Errorf("expected batch of 2, got %d", result.Enriched)
	}

	if result.Remaining != 1 {
		t.Errorf("expected 1 remaining, got %d", result.Remaining)
	}
}

func TestEnrichBatchCancelled(t *testing.T) {
	store := newMockStore(
		products.Product{ID: 1, Title: "One"},
		products.Product{ID: 2, Title: "Two"},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	enricher := New(store, &mockEmbedder{})

	// pacing delay hits the cancelled context before the second product
	if _, err := enricher.EnrichBatch(ctx, 10); err == nil {
		t.Error("expected context cancellation to surface")
	}
}

func TestBuildProductText(t *testing.T) {
	p := products.Product{
		Title:       "Dry Hair Serum",
		Category:    "Serums",
		ProductType: "Serum",
		Price:       499,
		Description: "Deep moisture for dry hair",
		Features:    "moisture lock",
		Tags:        []string{"dry", "serum"},
	}

	text := BuildProductText(p)

	for _, want := range []string{
		"Product: Dry Hair Serum",
		"Category: Serums",
		"Type: Serum",
		"Price: ₹499.00",
		"Description: Deep moisture for dry hair",
		"Features: moisture lock",
		"Tags: dry, serum",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected product text to contain %q", want)
		}
	}
}

func TestBuildProductTextDefaults(t *testing.T) {
	text := BuildProductText(products.Product{Title: "Bare", Price: 100})

	if !strings.Contains(text, "Category: Hair Care") {
		t.Error("expected default category")
	}

	if strings.Contains(text, "Description:") {
		t.Error("expected empty description to be omitted")
	}

	if strings.Contains(text, "Tags:") {
		t.Error("expected empty tags to be omitted")
	}
}
