package dto

import (
	"time"

	"github.com/anujbalmiki/pennywise/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the manual-entry payload.
type CreateTransactionRequest struct {
	Kind          string    `json:"kind" binding:"required"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	Currency      string    `json:"currency"`
	Counterparty  *string   `json:"counterparty"`
	Category      *string   `json:"category"`
	OccurredAt    time.Time `json:"occurred_at" binding:"required"`
	Reference     *string   `json:"reference"`
	AccountRef    *string   `json:"account_ref"`
	InstrumentRef *string   `json:"instrument_ref"`
	Method        *string   `json:"method"`
	Notes         *string   `json:"notes"`
	Tags          []string  `json:"tags"`
	Failed        bool      `json:"failed"`
}

// UpdateTransactionRequest defines the fields a user may edit after creation.
// Pointers differentiate omitted fields from zero values.
type UpdateTransactionRequest struct {
	Counterparty *string  `json:"counterparty"`
	Category     *string  `json:"category"`
	Notes        *string  `json:"notes"`
	Tags         []string `json:"tags"`
}

// ListTransactionsParams defines the combinable list filters. All set
// predicates are ANDed.
type ListTransactionsParams struct {
	StartDate    *time.Time `form:"start_date" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate      *time.Time `form:"end_date" time_format:"2006-01-02T15:04:05Z07:00"`
	MinAmount    *float64   `form:"min_amount"`
	MaxAmount    *float64   `form:"max_amount"`
	Kind         *string    `form:"kind"`
	Counterparty *string    `form:"counterparty"`
	Category     *string    `form:"category"`
	Method       *string    `form:"method"`
	Failed       *bool      `form:"failed"`
	Tag          *string    `form:"tag"`
	Limit        int        `form:"limit,default=50"`
	Offset       int        `form:"offset,default=0"`
}

// TransactionResponse is the API shape of one transaction.
type TransactionResponse struct {
	TransactionID   string          `json:"id"`
	SourceMessageID *string         `json:"source_message_id,omitempty"`
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Counterparty    *string         `json:"counterparty,omitempty"`
	Category        *string         `json:"category,omitempty"`
	OccurredAt      time.Time       `json:"occurred_at"`
	Reference       *string         `json:"reference,omitempty"`
	AccountRef      *string         `json:"account_ref,omitempty"`
	InstrumentRef   *string         `json:"instrument_ref,omitempty"`
	Method          *string         `json:"method,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	Tags            []string        `json:"tags"`
	Failed          bool            `json:"failed"`
	Recurring       bool            `json:"recurring"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToTransactionResponse converts a domain.Transaction to its API shape.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	var method *string
	if t.Method != nil {
		m := string(*t.Method)
		method = &m
	}
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		SourceMessageID: t.SourceMessageID,
		Kind:            string(t.Kind),
		Amount:          t.Amount,
		Currency:        t.Currency,
		Counterparty:    t.Counterparty,
		Category:        t.Category,
		OccurredAt:      t.OccurredAt,
		Reference:       t.Reference,
		AccountRef:      t.AccountRef,
		InstrumentRef:   t.InstrumentRef,
		Method:          method,
		Notes:           t.Notes,
		Tags:            tags,
		Failed:          t.Failed,
		Recurring:       t.Recurring,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToListTransactionsResponse converts a slice of domain transactions.
func ToListTransactionsResponse(ts []domain.Transaction) ListTransactionsResponse {
	resp := ListTransactionsResponse{Transactions: make([]TransactionResponse, len(ts))}
	for i := range ts {
		resp.Transactions[i] = ToTransactionResponse(&ts[i])
	}
	return resp
}

// RecurrenceMemberResponse references one transaction in a recurrence group.
type RecurrenceMemberResponse struct {
	TransactionID string          `json:"id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Amount        decimal.Decimal `json:"amount"`
}

// RecurrenceGroupResponse is the API shape of one detected recurrence group.
type RecurrenceGroupResponse struct {
	Counterparty string                     `json:"counterparty"`
	Amount       decimal.Decimal            `json:"amount"`
	DayOfMonth   int                        `json:"day_of_month"`
	Frequency    int                        `json:"frequency"`
	Transactions []RecurrenceMemberResponse `json:"transactions"`
}

// ToRecurrenceGroupResponses converts detected groups to their API shape.
func ToRecurrenceGroupResponses(groups []domain.RecurrenceGroup) []RecurrenceGroupResponse {
	resp := make([]RecurrenceGroupResponse, len(groups))
	for i, g := range groups {
		members := make([]RecurrenceMemberResponse, len(g.Members))
		for j, m := range g.Members {
			members[j] = RecurrenceMemberResponse{
				TransactionID: m.TransactionID,
				OccurredAt:    m.OccurredAt,
				Amount:        m.Amount,
			}
		}
		resp[i] = RecurrenceGroupResponse{
			Counterparty: g.Counterparty,
			Amount:       g.Amount,
			DayOfMonth:   g.DayOfMonth,
			Frequency:    g.Count,
			Transactions: members,
		}
	}
	return resp
}
