package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsWindow is an optional time window for aggregation. Both bounds are
// inclusive when set, matching the historical filter semantics.
type AnalyticsWindow struct {
	Start *time.Time
	End   *time.Time
}

// AnalyticsSnapshot is a point-in-time read model computed fresh per request.
// When no transactions match the window every count and sum is zero and every
// collection is empty, never nil.
type AnalyticsSnapshot struct {
	TotalTransactions     int64                      `json:"totalTransactions"`
	TotalAmount           decimal.Decimal            `json:"totalAmount"`
	AverageAmount         decimal.Decimal            `json:"averageAmount"`
	FailedTransactions    int64                      `json:"failedTransactions"`
	RecurringTransactions int64                      `json:"recurringTransactions"`
	CountByKind           map[string]int64           `json:"countByKind"`
	AmountByKind          map[string]decimal.Decimal `json:"amountByKind"`
	TopCounterparties     []GroupTotal               `json:"topCounterparties"`
	TopCategories         []GroupTotal               `json:"topCategories"`
	MonthlyTrends         []MonthlyTrend             `json:"monthlyTrends"`
}

// AnalyticsTotals carries the headline aggregates of one user's window.
type AnalyticsTotals struct {
	Count          int64
	TotalAmount    decimal.Decimal
	AverageAmount  decimal.Decimal
	FailedCount    int64
	RecurringCount int64
}

// KindBreakdownRow is the per-kind count/amount aggregate.
type KindBreakdownRow struct {
	Kind   TransactionKind
	Count  int64
	Amount decimal.Decimal
}

// GroupTotal is one entry of a top-N breakdown (by counterparty or category).
type GroupTotal struct {
	Name   string          `json:"name"`
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// MonthlyTrend is one (year, month) bucket of the trend series.
type MonthlyTrend struct {
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// BackupResult reports the outcome of one bulk statement-file import.
// Per-entry failures are collected into Errors without aborting the batch.
type BackupResult struct {
	Filename string
	FileType string
	Found    int
	Created  []Transaction
	Errors   []string
}
