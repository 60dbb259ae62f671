package services

import (
	"context"

	"github.com/anujbalmiki/pennywise/internal/core/domain"
	"github.com/anujbalmiki/pennywise/internal/dto"
)

// TransactionCreatorSvc persists transaction candidates. The ingestion and
// backup pipelines depend on this narrow interface rather than the full
// facade.
type TransactionCreatorSvc interface {
	// CreateFromCandidate assigns identity and audit fields to a normalized
	// candidate, validates it, persists it and applies the categorizer side
	// effect. The candidate carries the caller-set SourceMessageID when the
	// transaction was derived from a message.
	CreateFromCandidate(ctx context.Context, userID string, candidate domain.Transaction) (*domain.Transaction, error)
}

// TransactionSvcFacade combines the transaction CRUD surface.
type TransactionSvcFacade interface {
	TransactionCreatorSvc

	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// RecurrenceSvcFacade detects repeating charges in a user's history.
type RecurrenceSvcFacade interface {
	// DetectRecurring recomputes recurrence groups from scratch over the
	// trailing window, flags every member transaction recurring and returns
	// the groups ordered by descending member count. Idempotent.
	DetectRecurring(ctx context.Context, userID string) ([]domain.RecurrenceGroup, error)
}

// AnalyticsSvcFacade computes on-demand aggregates.
type AnalyticsSvcFacade interface {
	// Aggregate builds a fresh snapshot over the optional inclusive window.
	// With no matching transactions it returns a zero-valued snapshot.
	Aggregate(ctx context.Context, userID string, window domain.AnalyticsWindow) (*domain.AnalyticsSnapshot, error)
}

// BackupSvcFacade handles bulk statement-file imports.
type BackupSvcFacade interface {
	// ValidateBackupFile checks file type and non-empty decoded content.
	ValidateBackupFile(req dto.BackupUploadRequest) (*dto.BackupValidateResponse, error)

	// ProcessBackupFile extracts every transaction from the file via the
	// classifier and persists them, collecting per-entry failures without
	// aborting the batch.
	ProcessBackupFile(ctx context.Context, userID string, req dto.BackupUploadRequest) (*domain.BackupResult, error)
}
