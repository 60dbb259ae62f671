package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurrenceGroup is a transient cluster of transactions sharing counterparty,
// amount and day-of-month, inferred to be a repeating charge. It is derived on
// demand and never persisted; only the members' Recurring flags are.
//
// Day-of-month grouping is a known approximation: it ignores month-length
// differences and price changes of a subscription.
type RecurrenceGroup struct {
	Counterparty string             `json:"counterparty"`
	Amount       decimal.Decimal    `json:"amount"`
	DayOfMonth   int                `json:"dayOfMonth"`
	Count        int                `json:"count"`
	Members      []RecurrenceMember `json:"members"`
}

// RecurrenceMember references one transaction inside a recurrence group.
type RecurrenceMember struct {
	TransactionID string          `json:"transactionID"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Amount        decimal.Decimal `json:"amount"`
}
