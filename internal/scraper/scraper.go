package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"codeberg.org/mane/server/catalog/products"
	"codeberg.org/mane/server/internal/logger"
)

const (
	defaultBaseURL = "https://traya.health"
	pageSize       = 50

	// storefronts block default Go user agents
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

	maxFetchAttempts  = 3
	initialRetryDelay = 2 * time.Second
	maxRetryDelay     = 10 * time.Second

	// polite delay between page fetches
	pageDelay = 500 * time.Millisecond
)

// shared HTTP client for storefront calls
var scraperHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     60 * time.Second,
	},
}

func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL points the scraper at a different storefront; tests
// use this with httptest servers.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: scraperHTTPClient,
	}
}

// ScrapeCatalog pages through the storefront's products.json until at least
// minProducts parse cleanly or the listing is exhausted.
func (c *Client) ScrapeCatalog(ctx context.Context, minProducts int) ([]products.UpsertProductRequest, error) {
	var all []products.UpsertProductRequest

	page := 1

	for len(all) < minProducts {
		payload, err := c.fetchProductsPage(ctx, page, pageSize)
		if err != nil {
			// keep whatever earlier pages yielded
			logger.Warn("failed to fetch storefront page", "page", page, "error", err)
			break
		}

		if len(payload.Products) == 0 {
			break
		}

		for _, raw := range payload.Products {
			parsed := parseProduct(raw, c.baseURL)

			// skip placeholder listings without a sellable price
			if parsed.Title == "" || parsed.Price <= 0 {
				continue
			}

			all = append(all, parsed)
		}

		page++

		if err := sleepCtx(ctx, pageDelay); err != nil {
			return all, err
		}
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("storefront yielded no products")
	}

	return all, nil
}

// fetchProductsPage fetches one page with bounded retry and exponential
// backoff (2s, 4s, capped at 10s).
func (c *Client) fetchProductsPage(ctx context.Context, page, limit int) (*productsPayload, error) {
	url := fmt.Sprintf("%s/products.json?page=%d&limit=%d", c.baseURL, page, limit)

	var lastErr error
	delay := initialRetryDelay

	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, err
			}

			delay *= 2
			if delay > maxRetryDelay {
				delay = maxRetryDelay
			}
		}

		payload, err := c.fetchOnce(ctx, url)
		if err == nil {
			return payload, nil
		}

		lastErr = err
		logger.Debug("storefront fetch attempt failed", "url", url, "attempt", attempt, "error", err)
	}

	return nil, fmt.Errorf("fetch failed after %d attempts: %w", maxFetchAttempts, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, url string) (*productsPayload, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512)) //nolint:errcheck
		return nil, fmt.Errorf("storefront returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload productsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode products payload: %w", err)
	}

	return &payload, nil
}

// context-aware sleep
func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
