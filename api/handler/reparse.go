package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/credimport/models"
	"github.com/use-agent/credimport/reconcile"
)

// Reparse returns a handler for POST /api/v1/reparse. It re-runs the
// DOM track against a saved snapshot (by path or inline markup) with no
// live browser, merging a sidecar when one exists.
func Reparse() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ReparseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ReparseResponse{
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		if (req.HTML == "") == (req.HTMLPath == "") {
			c.JSON(http.StatusBadRequest, models.ReparseResponse{
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "exactly one of html or html_path must be set",
				},
			})
			return
		}

		var (
			report    *models.Report
			analytics models.Analytics
			err       error
		)
		if req.HTMLPath != "" {
			report, analytics, err = reconcile.ReparseFile(req.HTMLPath, req.SidecarPath)
		} else {
			var sidecar *models.Sidecar
			if req.SidecarPath != "" {
				sidecar, err = reconcile.LoadSidecar(req.SidecarPath)
			}
			if err == nil {
				report, analytics, err = reconcile.Reparse(req.HTML, sidecar)
			}
		}
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.ReparseResponse{
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeExtraction,
					Message: err.Error(),
				},
			})
			return
		}

		c.JSON(http.StatusOK, models.ReparseResponse{
			Success:   true,
			Report:    report,
			Analytics: &analytics,
		})
	}
}
