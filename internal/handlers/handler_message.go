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

// messageHandler handles HTTP requests for source messages and the ingestion
// pipeline.
type messageHandler struct {
	messageService portssvc.MessageSvcFacade
}

func newMessageHandler(ms portssvc.MessageSvcFacade) *messageHandler {
	return &messageHandler{messageService: ms}
}

// registerMessageRoutes registers routes related to messages.
func registerMessageRoutes(rg *gin.RouterGroup, messageService portssvc.MessageSvcFacade) {
	h := newMessageHandler(messageService)

	messages := rg.Group("/messages")
	{
		messages.POST("", h.ingestMessage)
		messages.GET("", h.listMessages)
		messages.GET("/statistics", h.getStatistics)
		messages.POST("/rescan", h.rescanMessages)
		messages.GET("/:id", h.getMessageByID)
		messages.DELETE("/:id", h.deleteMessage)
	}
}

// ingestMessage accepts a raw notification text, persists it and runs the
// classification pipeline. 201 with the derived transaction when one was
// found, 202 when the message was stored but is not transactional.
func (h *messageHandler) ingestMessage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IngestMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IngestMessage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.messageService.IngestMessage(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrClassifierUnavailable) {
			logger.Error("Classifier unavailable during ingest", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Classification service unavailable, message stored for rescan"})
			return
		}
		logger.Error("Failed to ingest message", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest message"})
		return
	}

	if result == nil {
		c.JSON(http.StatusAccepted, gin.H{"message": "Message stored; no transaction detected"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToIngestResultResponse(result))
}

// rescanMessages re-runs classification over the user's unconsumed backlog.
func (h *messageHandler) rescanMessages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	results, err := h.messageService.RescanMessages(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, apperrors.ErrClassifierUnavailable) {
		logger.Error("Rescan failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rescan messages"})
		return
	}

	resp := make([]dto.IngestResultResponse, len(results))
	for i := range results {
		resp[i] = dto.ToIngestResultResponse(&results[i])
	}
	// A partial batch interrupted by classifier outage still reports what
	// was created so far.
	c.JSON(http.StatusOK, gin.H{"created": resp, "count": len(resp)})
}

func (h *messageHandler) listMessages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListMessagesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	msgs, err := h.messageService.ListMessages(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list messages", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list messages"})
		return
	}

	resp := dto.ListMessagesResponse{Messages: make([]dto.MessageResponse, len(msgs))}
	for i := range msgs {
		resp.Messages[i] = dto.ToMessageResponse(&msgs[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *messageHandler) getMessageByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	messageID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	msg, err := h.messageService.GetMessageByID(c.Request.Context(), userID, messageID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		logger.Error("Failed to get message", slog.String("message_id", messageID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve message"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageResponse(msg))
}

func (h *messageHandler) getStatistics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, err := h.messageService.GetMessageStatistics(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to compute message statistics", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageStatisticsResponse(stats))
}

func (h *messageHandler) deleteMessage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	messageID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.messageService.DeleteMessage(c.Request.Context(), userID, messageID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		logger.Error("Failed to delete message", slog.String("message_id", messageID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	c.Status(http.StatusNoContent)
}
