package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anujbalmiki/pennywise/internal/apperrors"
	"github.com/anujbalmiki/pennywise/internal/core/domain"
	portsrepo "github.com/anujbalmiki/pennywise/internal/core/ports/repositories"
	"github.com/anujbalmiki/pennywise/internal/models"
	"github.com/anujbalmiki/pennywise/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMessageRepository struct {
	BaseRepository
}

// newPgxMessageRepository creates a new repository for source messages.
func newPgxMessageRepository(pool *pgxpool.Pool) portsrepo.SourceMessageRepository {
	return &PgxMessageRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SourceMessageRepository = (*PgxMessageRepository)(nil)

const messageColumns = `message_id, user_id, sender, body, observed_at, consumed, created_at, updated_at`

func scanMessage(row pgx.Row) (*models.SourceMessage, error) {
	var m models.SourceMessage
	err := row.Scan(
		&m.MessageID,
		&m.UserID,
		&m.Sender,
		&m.Body,
		&m.ObservedAt,
		&m.Consumed,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveMessage inserts a new source message.
func (r *PgxMessageRepository) SaveMessage(ctx context.Context, msg domain.SourceMessage) error {
	modelMsg := mapping.ToModelMessage(msg)

	query := `
		INSERT INTO source_messages (message_id, user_id, sender, body, observed_at, consumed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelMsg.MessageID,
		modelMsg.UserID,
		modelMsg.Sender,
		modelMsg.Body,
		modelMsg.ObservedAt,
		modelMsg.Consumed,
		modelMsg.CreatedAt,
		modelMsg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save message %s: %w", modelMsg.MessageID, err)
	}
	return nil
}

// FindMessageByID retrieves one message by ID scoped to the owner.
func (r *PgxMessageRepository) FindMessageByID(ctx context.Context, userID, messageID string) (*domain.SourceMessage, error) {
	query := `SELECT ` + messageColumns + ` FROM source_messages WHERE user_id = $1 AND message_id = $2;`

	modelMsg, err := scanMessage(r.Pool.QueryRow(ctx, query, userID, messageID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("message %s: %w", messageID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find message %s: %w", messageID, err)
	}

	msg := mapping.ToDomainMessage(*modelMsg)
	return &msg, nil
}

// FindMessages retrieves a page of the user's messages, newest observed first.
func (r *PgxMessageRepository) FindMessages(ctx context.Context, userID string, limit, offset int) ([]domain.SourceMessage, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM source_messages
		WHERE user_id = $1
		ORDER BY observed_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	return collectMessages(rows)
}

// FindUnconsumedMessages retrieves every message of the user that has not
// yet produced a transaction, oldest observed first so a rescan replays them
// in arrival order.
func (r *PgxMessageRepository) FindUnconsumedMessages(ctx context.Context, userID string) ([]domain.SourceMessage, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM source_messages
		WHERE user_id = $1 AND consumed = FALSE
		ORDER BY observed_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unconsumed messages: %w", err)
	}
	defer rows.Close()

	return collectMessages(rows)
}

func collectMessages(rows pgx.Rows) ([]domain.SourceMessage, error) {
	msgs := make([]domain.SourceMessage, 0)
	for rows.Next() {
		modelMsg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		msgs = append(msgs, mapping.ToDomainMessage(*modelMsg))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}
	return msgs, nil
}

// MarkMessageConsumed flips the consumed flag.
func (r *PgxMessageRepository) MarkMessageConsumed(ctx context.Context, messageID string, consumedAt time.Time) error {
	query := `UPDATE source_messages SET consumed = TRUE, updated_at = $2 WHERE message_id = $1;`

	tag, err := r.Pool.Exec(ctx, query, messageID, consumedAt)
	if err != nil {
		return fmt.Errorf("failed to mark message %s consumed: %w", messageID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("message %s: %w", messageID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteMessage removes one message scoped to the owner.
func (r *PgxMessageRepository) DeleteMessage(ctx context.Context, userID, messageID string) error {
	query := `DELETE FROM source_messages WHERE user_id = $1 AND message_id = $2;`

	tag, err := r.Pool.Exec(ctx, query, userID, messageID)
	if err != nil {
		return fmt.Errorf("failed to delete message %s: %w", messageID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("message %s: %w", messageID, apperrors.ErrNotFound)
	}
	return nil
}

// GetMessageStatistics computes totals and the top-sender breakdown.
func (r *PgxMessageRepository) GetMessageStatistics(ctx context.Context, userID string) (*domain.MessageStatistics, error) {
	totalsQuery := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE consumed)
		FROM source_messages
		WHERE user_id = $1;
	`
	stats := domain.MessageStatistics{TopSenders: []domain.SenderCount{}}
	err := r.Pool.QueryRow(ctx, totalsQuery, userID).Scan(&stats.TotalMessages, &stats.ConsumedMessages)
	if err != nil {
		return nil, fmt.Errorf("failed to compute message totals: %w", err)
	}
	stats.PendingMessages = stats.TotalMessages - stats.ConsumedMessages

	sendersQuery := `
		SELECT sender, COUNT(*)
		FROM source_messages
		WHERE user_id = $1
		GROUP BY sender
		ORDER BY COUNT(*) DESC, sender ASC
		LIMIT 10;
	`
	rows, err := r.Pool.Query(ctx, sendersQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query top senders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc domain.SenderCount
		if err := rows.Scan(&sc.Sender, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan sender row: %w", err)
		}
		stats.TopSenders = append(stats.TopSenders, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sender rows: %w", err)
	}
	return &stats, nil
}
