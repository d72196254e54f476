package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/crimewatch/internal/telemetry"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health, readiness and metrics
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)
	router.GET("/metrics", gin.WrapH(telemetry.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		records := v1.Group("/records")
		{
			records.GET("", handler.ListRecords)    // GET /api/v1/records
			records.GET("/stats", handler.GetStats) // GET /api/v1/records/stats
		}

		v1.POST("/process", handler.ProcessArticle) // POST /api/v1/process
	}
}
