package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/anujbalmiki/pennywise/internal/apperrors"
	portssvc "github.com/anujbalmiki/pennywise/internal/core/ports/services"
	"github.com/anujbalmiki/pennywise/internal/dto"
	"github.com/anujbalmiki/pennywise/internal/middleware"
	"github.com/gin-gonic/gin"
)

// backupHandler handles statement-file bulk imports.
type backupHandler struct {
	backupService portssvc.BackupSvcFacade
}

func newBackupHandler(bs portssvc.BackupSvcFacade) *backupHandler {
	return &backupHandler{backupService: bs}
}

// registerBackupRoutes registers routes related to backup imports.
func registerBackupRoutes(rg *gin.RouterGroup, backupService portssvc.BackupSvcFacade) {
	h := newBackupHandler(backupService)

	backup := rg.Group("/backup")
	{
		backup.POST("/validate", h.validateBackupFile)
		backup.POST("/upload", h.uploadBackupFile)
	}
}

// validateBackupFile checks a backup payload without importing it.
func (h *backupHandler) validateBackupFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BackupUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ValidateBackupFile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.backupService.ValidateBackupFile(req)
	if err != nil {
		logger.Error("Backup validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate backup file"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// uploadBackupFile extracts and persists every transaction in the file.
func (h *backupHandler) uploadBackupFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BackupUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UploadBackupFile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.backupService.ProcessBackupFile(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrClassifierUnavailable):
			logger.Error("Classifier unavailable during backup import", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Classification service unavailable"})
		default:
			logger.Error("Backup import failed", slog.String("filename", req.Filename), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process backup file"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToBackupUploadResponse(result))
}
