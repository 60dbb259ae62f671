package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors the transactions table. Nullable columns are pointers;
// Amount is stored as NUMERIC and scanned through decimal.Decimal.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	UserID          string          `json:"userID"`
	SourceMessageID *string         `json:"sourceMessageID"`
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Counterparty    *string         `json:"counterparty"`
	Category        *string         `json:"category"`
	OccurredAt      time.Time       `json:"occurredAt"`
	Reference       *string         `json:"reference"`
	AccountRef      *string         `json:"accountRef"`
	InstrumentRef   *string         `json:"instrumentRef"`
	Method          *string         `json:"method"`
	Notes           *string         `json:"notes"`
	Tags            []string        `json:"tags"`
	Failed          bool            `json:"failed"`
	Recurring       bool            `json:"recurring"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
