package scraper

import (
	"encoding/json"
	"net/http"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Shopify /products.json payload shapes; only the fields the catalog needs

type productsPayload struct {
	Products []shopifyProduct `json:"products"`
}

type shopifyProduct struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Handle      string           `json:"handle"`
	BodyHTML    string           `json:"body_html"`
	ProductType string           `json:"product_type"`
	Vendor      string           `json:"vendor"`
	Tags        json.RawMessage  `json:"tags"` // list of strings, or one comma-joined string
	Variants    []shopifyVariant `json:"variants"`
	Images      []shopifyImage   `json:"images"`
}

type shopifyVariant struct {
	Price          string  `json:"price"`
	CompareAtPrice *string `json:"compare_at_price"`
}

type shopifyImage struct {
	Src string `json:"src"`
}
