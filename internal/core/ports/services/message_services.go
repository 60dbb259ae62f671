package services

import (
	"context"

	"github.com/anujbalmiki/pennywise/internal/core/domain"
	"github.com/anujbalmiki/pennywise/internal/dto"
)

// MessageIngestionSvc defines the ingestion pipeline entry points.
type MessageIngestionSvc interface {
	// IngestMessage persists the message, classifies it and, when a
	// transaction is found, normalizes and persists it, marks the message
	// consumed and triggers categorization. A nil result with a nil error
	// means no transaction was found; the message stays unconsumed for a
	// later rescan. Errors wrapping apperrors.ErrClassifierUnavailable mean
	// the classifier could not be reached.
	IngestMessage(ctx context.Context, userID string, req dto.IngestMessageRequest) (*domain.IngestResult, error)

	// RescanMessages re-runs classification over every unconsumed message
	// of the user and returns the newly created transaction references.
	RescanMessages(ctx context.Context, userID string) ([]domain.IngestResult, error)
}

// MessageReaderSvc defines message read operations.
type MessageReaderSvc interface {
	GetMessageByID(ctx context.Context, userID, messageID string) (*domain.SourceMessage, error)
	ListMessages(ctx context.Context, userID string, limit, offset int) ([]domain.SourceMessage, error)
	GetMessageStatistics(ctx context.Context, userID string) (*domain.MessageStatistics, error)
}

// MessageDeleterSvc defines message deletion.
type MessageDeleterSvc interface {
	DeleteMessage(ctx context.Context, userID, messageID string) error
}

// MessageSvcFacade combines all message service interfaces.
type MessageSvcFacade interface {
	MessageIngestionSvc
	MessageReaderSvc
	MessageDeleterSvc
}
