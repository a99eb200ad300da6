package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/credimport/importer"
	"github.com/use-agent/credimport/models"
)

// Health returns a handler for GET /api/v1/health.
func Health(imp *importer.Importer, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		active := imp.ActiveImports()

		status := "healthy"
		if active > 5 {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:        status,
			Uptime:        time.Since(startTime).Round(time.Second).String(),
			ActiveImports: active,
			Services:      imp.Services(),
			Version:       "0.1.0",
		})
	}
}
