package repositories

import (
	"context"
	"time"

	"github.com/anujbalmiki/pennywise/internal/core/domain"
)

// TransactionReader defines read operations for transactions.
type TransactionReader interface {
	// FindTransactionByID retrieves one transaction owned by the given user.
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// FindTransactions retrieves transactions matching the filter, newest
	// occurred_at first.
	FindTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// FindTransactionsSince retrieves every transaction of the user with a
	// known counterparty that occurred at or after the given instant. This
	// is the recurrence detector's working set.
	FindTransactionsSince(ctx context.Context, userID string, since time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction overwrites the mutable columns of an existing
	// transaction owned by the given user.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// SetTransactionCategory assigns a category to one transaction. Used by
	// the categorizer side effect immediately after creation.
	SetTransactionCategory(ctx context.Context, userID, transactionID, category string, updatedAt time.Time) error

	// MarkTransactionsRecurring flags the given transactions as recurring.
	// Re-flagging an already recurring transaction is a no-op, which keeps
	// the recurrence detector idempotent.
	MarkTransactionsRecurring(ctx context.Context, userID string, transactionIDs []string, updatedAt time.Time) error

	// DeleteTransaction removes a transaction owned by the given user.
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// TransactionRepository combines all transaction repository interfaces.
type TransactionRepository interface {
	TransactionReader
	TransactionWriter
}
