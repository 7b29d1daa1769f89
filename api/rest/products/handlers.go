package products

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/mane/server/api/rest/pagination"
	catalog "codeberg.org/mane/server/catalog/products"
	apierrors "codeberg.org/mane/server/internal/errors"
)

// ListHandler returns a paginated slice of the catalog
func ListHandler(productRepo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := pagination.FromQuery(c, defaultListLimit, maxListLimit)

		list, total, err := productRepo.List(c.Request.Context(), params.Limit, params.Offset)
		if err != nil {
			apierrors.InternalError(c, "failed to list products", err)
			return
		}

		if list == nil {
			list = []catalog.Product{}
		}

		c.JSON(http.StatusOK, ListResponse{
			Products:   list,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// SearchHandler performs a substring search over title, description and
// category
func SearchHandler(productRepo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			apierrors.BadRequest(c, "query parameter 'q' is required", nil)
			return
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0")) //nolint:errcheck
		if limit <= 0 {
			limit = defaultSearchLimit
		}

		if limit > maxSearchLimit {
			limit = maxSearchLimit
		}

		list, err := productRepo.Search(c.Request.Context(), query, limit)
		if err != nil {
			apierrors.InternalError(c, "failed to search products", err)
			return
		}

		if list == nil {
			list = []catalog.Product{}
		}

		c.JSON(http.StatusOK, SearchResponse{
			Products: list,
			Query:    query,
			Count:    len(list),
		})
	}
}

// GetHandler returns a single product by its numeric id
func GetHandler(productRepo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			apierrors.BadRequest(c, "product id must be an integer", err)
			return
		}

		product, err := productRepo.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				apierrors.NotFound(c, "product")
				return
			}

			apierrors.InternalError(c, "failed to get product", err)

			return
		}

		c.JSON(http.StatusOK, product)
	}
}
