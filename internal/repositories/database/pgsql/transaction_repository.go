package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anujbalmiki/pennywise/internal/apperrors"
	"github.com/anujbalmiki/pennywise/internal/core/domain"
	portsrepo "github.com/anujbalmiki/pennywise/internal/core/ports/repositories"
	"github.com/anujbalmiki/pennywise/internal/models"
	"github.com/anujbalmiki/pennywise/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, user_id, source_message_id, kind, amount, currency, counterparty, category,
	occurred_at, reference, account_ref, instrument_ref, method, notes, tags, failed, recurring, created_at, updated_at`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.UserID,
		&t.SourceMessageID,
		&t.Kind,
		&t.Amount,
		&t.Currency,
		&t.Counterparty,
		&t.Category,
		&t.OccurredAt,
		&t.Reference,
		&t.AccountRef,
		&t.InstrumentRef,
		&t.Method,
		&t.Notes,
		&t.Tags,
		&t.Failed,
		&t.Recurring,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveTransaction inserts a new transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (transaction_id, user_id, source_message_id, kind, amount, currency, counterparty, category,
			occurred_at, reference, account_ref, instrument_ref, method, notes, tags, failed, recurring, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.UserID,
		modelTxn.SourceMessageID,
		modelTxn.Kind,
		modelTxn.Amount,
		modelTxn.Currency,
		modelTxn.Counterparty,
		modelTxn.Category,
		modelTxn.OccurredAt,
		modelTxn.Reference,
		modelTxn.AccountRef,
		modelTxn.InstrumentRef,
		modelTxn.Method,
		modelTxn.Notes,
		modelTxn.Tags,
		modelTxn.Failed,
		modelTxn.Recurring,
		modelTxn.CreatedAt,
		modelTxn.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", modelTxn.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves one transaction by ID scoped to the owner.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND transaction_id = $2;`

	modelTxn, err := scanTransaction(r.Pool.QueryRow(ctx, query, userID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(*modelTxn)
	return &txn, nil
}

// FindTransactions retrieves transactions matching the filter, newest
// occurred_at first. All set predicates are ANDed.
func (r *PgxTransactionRepository) FindTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}

	addCondition := func(cond string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.StartDate != nil {
		addCondition("occurred_at >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addCondition("occurred_at <= $%d", *filter.EndDate)
	}
	if filter.MinAmount != nil {
		addCondition("amount >= $%d", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		addCondition("amount <= $%d", *filter.MaxAmount)
	}
	if filter.Kind != nil {
		addCondition("kind = $%d", string(*filter.Kind))
	}
	if filter.Counterparty != nil {
		addCondition("counterparty ILIKE '%%' || $%d || '%%'", *filter.Counterparty)
	}
	if filter.Category != nil {
		addCondition("category = $%d", *filter.Category)
	}
	if filter.Method != nil {
		addCondition("method = $%d", string(*filter.Method))
	}
	if filter.Failed != nil {
		addCondition("failed = $%d", *filter.Failed)
	}
	if len(filter.Tags) > 0 {
		addCondition("tags && $%d", filter.Tags)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE %s
		ORDER BY occurred_at DESC
		LIMIT $%d OFFSET $%d;
	`, strings.Join(conditions, " AND "), len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// FindTransactionsSince retrieves the recurrence detector's working set:
// every transaction with a known counterparty at or after the given instant,
// in chronological order.
func (r *PgxTransactionRepository) FindTransactionsSince(ctx context.Context, userID string, since time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND occurred_at >= $2 AND counterparty IS NOT NULL
		ORDER BY occurred_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions since %s: %w", since, err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		modelTxn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(*modelTxn))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// UpdateTransaction overwrites the mutable columns of one transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET counterparty = $3, category = $4, notes = $5, tags = $6, updated_at = $7
		WHERE user_id = $1 AND transaction_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelTxn.UserID,
		modelTxn.TransactionID,
		modelTxn.Counterparty,
		modelTxn.Category,
		modelTxn.Notes,
		modelTxn.Tags,
		modelTxn.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", modelTxn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", modelTxn.TransactionID, apperrors.ErrNotFound)
	}
	return nil
}

// SetTransactionCategory assigns a category to one transaction.
func (r *PgxTransactionRepository) SetTransactionCategory(ctx context.Context, userID, transactionID, category string, updatedAt time.Time) error {
	query := `UPDATE transactions SET category = $3, updated_at = $4 WHERE user_id = $1 AND transaction_id = $2;`

	tag, err := r.Pool.Exec(ctx, query, userID, transactionID, category, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to set category on transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return nil
}

// MarkTransactionsRecurring flags the given transactions as recurring.
func (r *PgxTransactionRepository) MarkTransactionsRecurring(ctx context.Context, userID string, transactionIDs []string, updatedAt time.Time) error {
	if len(transactionIDs) == 0 {
		return nil
	}
	query := `
		UPDATE transactions
		SET recurring = TRUE, updated_at = $3
		WHERE user_id = $1 AND transaction_id = ANY($2) AND recurring = FALSE;
	`
	if _, err := r.Pool.Exec(ctx, query, userID, transactionIDs, updatedAt); err != nil {
		return fmt.Errorf("failed to flag recurring transactions: %w", err)
	}
	return nil
}

// DeleteTransaction removes one transaction scoped to the owner.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	query := `DELETE FROM transactions WHERE user_id = $1 AND transaction_id = $2;`

	tag, err := r.Pool.Exec(ctx, query, userID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return nil
}
