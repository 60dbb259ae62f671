package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anujbalmiki/pennywise/internal/apperrors"
	"github.com/anujbalmiki/pennywise/internal/core/domain"
	"github.com/anujbalmiki/pennywise/internal/core/ports"
	portsrepo "github.com/anujbalmiki/pennywise/internal/core/ports/repositories"
	portssvc "github.com/anujbalmiki/pennywise/internal/core/ports/services"
	"github.com/anujbalmiki/pennywise/internal/dto"
	"github.com/anujbalmiki/pennywise/internal/middleware"
	"github.com/google/uuid"
)

type messageService struct {
	messageRepo portsrepo.SourceMessageRepository
	classifier  ports.TransactionClassifier
	txnCreator  portssvc.TransactionCreatorSvc
}

// NewMessageService creates the ingestion/read/delete service for source
// messages.
func NewMessageService(messageRepo portsrepo.SourceMessageRepository, classifier ports.TransactionClassifier, txnCreator portssvc.TransactionCreatorSvc) portssvc.MessageSvcFacade {
	return &messageService{
		messageRepo: messageRepo,
		classifier:  classifier,
		txnCreator:  txnCreator,
	}
}

func (s *messageService) IngestMessage(ctx context.Context, userID string, req dto.IngestMessageRequest) (*domain.IngestResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	msg := domain.SourceMessage{
		MessageID:  uuid.NewString(),
		UserID:     userID,
		Sender:     req.Sender,
		Body:       req.Body,
		ObservedAt: req.ObservedAt,
		Consumed:   false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.messageRepo.SaveMessage(ctx, msg); err != nil {
		logger.Error("Failed to save source message", slog.String("error", err.Error()), slog.String("sender", req.Sender))
		return nil, fmt.Errorf("failed to save source message: %w", err)
	}

	result, err := s.processMessage(ctx, msg)
	if err != nil {
		// The message is already persisted; a classifier outage is
		// surfaced so the caller can retry via rescan later.
		return nil, err
	}
	return result, nil
}

func (s *messageService) RescanMessages(ctx context.Context, userID string) ([]domain.IngestResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	pending, err := s.messageRepo.FindUnconsumedMessages(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unconsumed messages: %w", err)
	}

	results := make([]domain.IngestResult, 0, len(pending))
	for _, msg := range pending {
		result, err := s.processMessage(ctx, msg)
		if err != nil {
			if errors.Is(err, apperrors.ErrClassifierUnavailable) {
				// No point hammering an unreachable classifier for the
				// rest of the batch.
				logger.Warn("Classifier unavailable during rescan, stopping batch", slog.String("message_id", msg.MessageID))
				return results, err
			}
			logger.Warn("Rescan failed for message, continuing", slog.String("message_id", msg.MessageID), slog.String("error", err.Error()))
			continue
		}
		if result != nil {
			results = append(results, *result)
		}
	}
	logger.Info("Rescan finished", slog.Int("pending", len(pending)), slog.Int("created", len(results)))
	return results, nil
}

// processMessage runs a single persisted message through classify, normalize,
// persist and mark-consumed. A nil, nil return means the message does not
// describe a transaction and stays unconsumed.
func (s *messageService) processMessage(ctx context.Context, msg domain.SourceMessage) (*domain.IngestResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	classification, err := s.classifier.Classify(ctx, msg.Sender, msg.Body)
	if err != nil {
		return nil, fmt.Errorf("classification of message %s failed: %w", msg.MessageID, err)
	}
	if classification == nil || !classification.IsTransaction {
		logger.Info("Message is not a transaction", slog.String("message_id", msg.MessageID), slog.String("sender", msg.Sender))
		return nil, nil
	}

	candidate, err := NormalizeClassification(*classification, msg.ObservedAt)
	if err != nil {
		// The classifier claimed a transaction but produced an output the
		// schema rejects. Leave the message unconsumed so a later rescan
		// with a better model can pick it up.
		logger.Warn("Classifier output failed normalization", slog.String("message_id", msg.MessageID), slog.String("error", err.Error()))
		return nil, nil
	}
	candidate.SourceMessageID = &msg.MessageID

	txn, err := s.txnCreator.CreateFromCandidate(ctx, msg.UserID, candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to persist transaction for message %s: %w", msg.MessageID, err)
	}

	if err := s.messageRepo.MarkMessageConsumed(ctx, msg.MessageID, time.Now()); err != nil {
		logger.Error("Failed to mark message consumed", slog.String("message_id", msg.MessageID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to mark message %s consumed: %w", msg.MessageID, err)
	}

	logger.Info("Message ingested into transaction", slog.String("message_id", msg.MessageID), slog.String("transaction_id", txn.TransactionID))
	return &domain.IngestResult{
		MessageID:   msg.MessageID,
		Transaction: txn,
		Confidence:  classification.Confidence,
		Reason:      classification.Reason,
	}, nil
}

func (s *messageService) GetMessageByID(ctx context.Context, userID, messageID string) (*domain.SourceMessage, error) {
	msg, err := s.messageRepo.FindMessageByID(ctx, userID, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return msg, nil
}

func (s *messageService) ListMessages(ctx context.Context, userID string, limit, offset int) ([]domain.SourceMessage, error) {
	msgs, err := s.messageRepo.FindMessages(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	if msgs == nil {
		msgs = []domain.SourceMessage{}
	}
	return msgs, nil
}

func (s *messageService) GetMessageStatistics(ctx context.Context, userID string) (*domain.MessageStatistics, error) {
	stats, err := s.messageRepo.GetMessageStatistics(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute message statistics: %w", err)
	}
	return stats, nil
}

func (s *messageService) DeleteMessage(ctx context.Context, userID, messageID string) error {
	if err := s.messageRepo.DeleteMessage(ctx, userID, messageID); err != nil {
		return fmt.Errorf("failed to delete message %s: %w", messageID, err)
	}
	return nil
}
