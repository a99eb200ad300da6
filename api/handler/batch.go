package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/use-agent/credimport/config"
	"github.com/use-agent/credimport/importer"
	"github.com/use-agent/credimport/models"
	"github.com/use-agent/credimport/webhook"
)

// batchStore holds all in-flight and completed batch jobs.
var batchStore sync.Map

func init() {
	// Background goroutine to expire batch jobs older than 24 hours.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-24 * time.Hour).Unix()
			batchStore.Range(func(key, value any) bool {
				job := value.(*models.BatchJob)
				if job.CreatedAt < cutoff {
					batchStore.Delete(key)
				}
				return true
			})
		}
	}()
}

// PostBatch returns a handler for POST /api/v1/batch. Imports run
// sequentially in the background with a fixed inter-request delay:
// batching policy toward the monitored sites, not a core constraint.
func PostBatch(imp *importer.Importer, cfg config.ImporterConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		if len(req.Imports) > 50 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "maximum 50 imports per batch",
				},
			})
			return
		}

		jobID := "batch-" + randomID()
		job := &models.BatchJob{
			ID:        jobID,
			Status:    "processing",
			Total:     len(req.Imports),
			Results:   make([]*models.ImportResult, len(req.Imports)),
			CreatedAt: time.Now().Unix(),
		}
		batchStore.Store(jobID, job)

		go runBatch(imp, cfg, job, req)

		c.JSON(http.StatusOK, models.BatchResponse{
			ID:     jobID,
			Status: "processing",
			Total:  len(req.Imports),
		})
	}
}

// GetBatch returns a handler for GET /api/v1/batch/:id.
func GetBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID := c.Param("id")
		val, ok := batchStore.Load(jobID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "batch job not found",
				},
			})
			return
		}
		c.JSON(http.StatusOK, val.(*models.BatchJob))
	}
}

// runBatch processes the imports one at a time, paced by a token
// bucket so consecutive logins to the same site family stay spaced out.
func runBatch(imp *importer.Importer, cfg config.ImporterConfig, job *models.BatchJob, req models.BatchRequest) {
	limiter := rate.NewLimiter(rate.Every(cfg.BatchDelay), 1)
	ctx := context.Background()

	for i := range req.Imports {
		if err := limiter.Wait(ctx); err != nil {
			break
		}
		job.Results[i] = imp.ImportReport(ctx, &req.Imports[i])
		job.Completed = i + 1
	}
	job.Status = "completed"

	if req.WebhookURL != "" {
		webhook.DeliverAsync(req.WebhookURL, req.WebhookSecret, &webhook.Event{
			Type:      "batch.completed",
			JobID:     job.ID,
			Timestamp: time.Now().Unix(),
			Data:      job,
		})
	}
}

func randomID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().Format("150405.000")))
	}
	return hex.EncodeToString(b)
}
