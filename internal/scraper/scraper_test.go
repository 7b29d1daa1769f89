package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storefrontPage(ids ...int64) productsPayload {
	payload := productsPayload{}

	for _, id := range ids {
		payload.Products = append(payload.Products, shopifyProduct{
			ID:       id,
			Title:    fmt.Sprintf("Product %d", id),
			Handle:   fmt.Sprintf("product-%d", id),
			Variants: []shopifyVariant{{Price: "199.00"}},
		})
	}

	return payload
}

func TestScrapeCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		page := r.URL.Query().Get("page")

		var payload productsPayload
		if page == "1" {
			payload = storefrontPage(1, 2)
		}

		// page 2 onward is empty, ending the crawl

		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	scraped, err := client.ScrapeCatalog(context.Background(), 5)

	require.NoError(t, err)
	assert.Len(t, scraped, 2)
	assert.Equal(t, "1", scraped[0].ExternalID)
}

func TestScrapeCatalogSkipsUnsellable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := storefrontPage(1)
		payload.Products = append(payload.Products,
			shopifyProduct{ID: 2, Title: "", Variants: []shopifyVariant{{Price: "99"}}},
			shopifyProduct{ID: 3, Title: "Free Sample", Variants: []shopifyVariant{{Price: "0"}}},
		)

		if r.URL.Query().Get("page") != "1" {
			payload = productsPayload{}
		}

		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	scraped, err := client.ScrapeCatalog(context.Background(), 3)

	require.NoError(t, err)
	assert.Len(t, scraped, 1)
}

func TestScrapeCatalogEmptyStorefront(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(productsPayload{}))
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	_, err := client.ScrapeCatalog(context.Background(), 10)

	assert.Error(t, err)
}

func TestFetchOnceStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)

	_, err := client.fetchOnce(context.Background(), server.URL+"/products.json")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
