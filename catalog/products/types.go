package products

import "github.com/jackc/pgx/v5/pgxpool"

type Repository struct {
	db *pgxpool.Pool
}

// Product is a catalog record. The embedding column is write-only from Go's
// perspective: it is populated by the enrichment pipeline and consumed by the
// nearest-neighbor query inside Postgres, never materialized in this struct.
type Product struct {
	ID           int      `json:"id"`
	ExternalID   string   `json:"external_id"`
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	ComparePrice *float64 `json:"compare_price,omitempty"`
	Description  string   `json:"description,omitempty"`
	Features     string   `json:"features,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	Images       []string `json:"images,omitempty"`
	Category     string   `json:"category,omitempty"`
	Vendor       string   `json:"vendor,omitempty"`
	ProductType  string   `json:"product_type,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// NearestResult pairs a product with its embedding distance to a query vector
// (smaller = more similar; the metric is whatever the store operator uses).
type NearestResult struct {
	Product  Product
	Distance float32
}

type UpsertProductRequest struct {
	ExternalID   string   `json:"external_id" binding:"required,max=100"`
	Title        string   `json:"title" binding:"required,max=500"`
	Price        float64  `json:"price" binding:"min=0"`
	ComparePrice *float64 `json:"compare_price,omitempty"`
	Description  string   `json:"description,omitempty"`
	Features     string   `json:"features,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	Images       []string `json:"images,omitempty" binding:"max=5"`
	Category     string   `json:"category,omitempty" binding:"max=200"`
	Vendor       string   `json:"vendor,omitempty" binding:"max=200"`
	ProductType  string   `json:"product_type,omitempty" binding:"max=200"`
	Tags         []string `json:"tags,omitempty" binding:"max=20,dive,max=100"`
	URL          string   `json:"url,omitempty"`
}
