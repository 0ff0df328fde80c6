package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"merchant-directory-backend/internal/domains/merchant/model"
	"merchant-directory-backend/internal/domains/merchant/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type BatchUploadHandler struct {
	service service.BatchImportServiceInterface
}

func NewBatchUploadHandler(svc service.BatchImportServiceInterface) *BatchUploadHandler {
	return &BatchUploadHandler{service: svc}
}

// ImportManifest - POST /api/v1/admin/batch-upload
// Requires admin role (checked by middleware before this handler).
//
// The response is the raw batch contract the admin console renders
// ({status, results} / {status, error}), not the shared envelope.
// Note: a panic escaping the per-item guards discards the item results
// already produced, even though their upserts were committed. The
// per-item result list is the audit trail only for completed batches.
func (h *BatchUploadHandler) ImportManifest(c *gin.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Str("request_id", c.GetString("request_id")).
				Interface("error", rec).
				Msg("Batch import panicked")

			c.JSON(http.StatusInternalServerError, gin.H{
				"status": "error",
				"error":  fmt.Sprint(rec),
				"stack":  string(debug.Stack()),
			})
			c.Abort()
		}
	}()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "Manifest is missing or has no items.",
		})
		return
	}

	result, err := h.service.ImportManifest(c.Request.Context(), body)
	if err != nil {
		if errors.Is(err, model.ErrInvalidManifest) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status": "error",
				"error":  "Manifest is missing or has no items.",
			})
			return
		}
		log.Error().Err(err).Msg("Batch import failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
