package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/credimport/importer"
	"github.com/use-agent/credimport/models"
)

// Import returns a handler for POST /api/v1/import.
//
// The import itself never errors: the result always carries an explicit
// success flag, so the only non-200 responses here are malformed
// request bodies.
func Import(imp *importer.Importer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ImportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		result := imp.ImportReport(c.Request.Context(), &req)
		c.JSON(http.StatusOK, result)
	}
}
