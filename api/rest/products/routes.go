package products

import (
	"github.com/gin-gonic/gin"

	catalog "codeberg.org/mane/server/catalog/products"
)

func RegisterRoutes(router *gin.RouterGroup, productRepo *catalog.Repository) {
	productsGroup := router.Group("/products")
	{
		productsGroup.GET("", ListHandler(productRepo))
		productsGroup.GET("/search", SearchHandler(productRepo))
		productsGroup.GET("/:id", GetHandler(productRepo))
	}
}
