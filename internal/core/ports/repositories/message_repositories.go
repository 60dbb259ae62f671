package repositories

import (
	"context"
	"time"

	"github.com/anujbalmiki/pennywise/internal/core/domain"
)

// SourceMessageReader defines read operations for source messages.
type SourceMessageReader interface {
	// FindMessageByID retrieves one message owned by the given user.
	FindMessageByID(ctx context.Context, userID, messageID string) (*domain.SourceMessage, error)

	// FindMessages retrieves a paginated list of the user's messages,
	// newest observed first.
	FindMessages(ctx context.Context, userID string, limit, offset int) ([]domain.SourceMessage, error)

	// FindUnconsumedMessages retrieves every message of the user that has
	// not yet produced a transaction. This is the rescan working set.
	FindUnconsumedMessages(ctx context.Context, userID string) ([]domain.SourceMessage, error)

	// GetMessageStatistics computes message totals and the per-sender
	// breakdown for the user.
	GetMessageStatistics(ctx context.Context, userID string) (*domain.MessageStatistics, error)
}

// SourceMessageWriter defines write operations for source messages.
type SourceMessageWriter interface {
	// SaveMessage persists a new message.
	SaveMessage(ctx context.Context, msg domain.SourceMessage) error

	// MarkMessageConsumed flips the consumed flag to true. It is called
	// exactly once per message, after a transaction was derived from it.
	MarkMessageConsumed(ctx context.Context, messageID string, consumedAt time.Time) error

	// DeleteMessage removes a message owned by the given user.
	DeleteMessage(ctx context.Context, userID, messageID string) error
}

// SourceMessageRepository combines all source-message repository interfaces.
type SourceMessageRepository interface {
	SourceMessageReader
	SourceMessageWriter
}
