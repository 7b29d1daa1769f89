package ingest

const (
	defaultMinProducts = 30
	maxMinProducts     = 500

	defaultEmbedBatchSize = 10
	maxEmbedBatchSize     = 100
)

// catalog scrape result
type RunResponse struct {
	Scraped  int `json:"scraped"`
	Upserted int `json:"upserted"`
	Failed   int `json:"failed"`
}

// embedding enrichment result
type EmbeddingsResponse struct {
	Enriched  int `json:"enriched"`
	Failed    int `json:"failed"`
	Remaining int `json:"remaining"`
}
