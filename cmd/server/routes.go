package main

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/mane/server/api/rest/chat"
	"codeberg.org/mane/server/api/rest/health"
	"codeberg.org/mane/server/api/rest/ingest"
	"codeberg.org/mane/server/api/rest/products"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")

	{
		products.RegisterRoutes(v1, server.productRepo)
		chat.RegisterRoutes(v1, server.services.Assistant)
		ingest.RegisterRoutes(v1, server.services.Scraper, server.productRepo, server.services.Enricher)
	}
}
