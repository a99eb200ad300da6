package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/credimport/api/handler"
	"github.com/use-agent/credimport/api/middleware"
	"github.com/use-agent/credimport/config"
	"github.com/use-agent/credimport/importer"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(imp *importer.Importer, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health endpoint needs no auth.
	v1.GET("/health", handler.Health(imp, startTime))

	// Protected group: auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Live import
	protected.POST("/import", handler.Import(imp))

	// Offline reparse of saved snapshots
	protected.POST("/reparse", handler.Reparse())

	// Batch
	protected.POST("/batch", handler.PostBatch(imp, cfg.Importer))
	protected.GET("/batch/:id", handler.GetBatch())

	return r
}
