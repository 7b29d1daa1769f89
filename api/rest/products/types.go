package products

import (
	"codeberg.org/mane/server/api/rest/pagination"
	"codeberg.org/mane/server/catalog/products"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100

	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

// paginated product listing
type ListResponse struct {
	Products   []products.Product `json:"products"`
	Pagination pagination.Meta    `json:"pagination"`
}

// substring search results
type SearchResponse struct {
	Products []products.Product `json:"products"`
	Query    string             `json:"query"`
	Count    int                `json:"count"`
}
