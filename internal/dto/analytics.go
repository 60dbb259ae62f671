package dto

import (
	"time"

	"github.com/anujbalmiki/pennywise/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AnalyticsParams defines the optional aggregation window. Both bounds are
// inclusive when set.
type AnalyticsParams struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02T15:04:05Z07:00"`
}

// GroupTotalResponse is one top-N breakdown entry.
type GroupTotalResponse struct {
	Name   string          `json:"name"`
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// MonthlyTrendResponse is one (year, month) bucket of the trend series.
type MonthlyTrendResponse struct {
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// AnalyticsResponse is the API shape of an analytics snapshot.
type AnalyticsResponse struct {
	TotalTransactions     int64                      `json:"total_transactions"`
	TotalAmount           decimal.Decimal            `json:"total_amount"`
	AverageAmount         decimal.Decimal            `json:"average_amount"`
	CountByKind           map[string]int64           `json:"transaction_count_by_type"`
	AmountByKind          map[string]decimal.Decimal `json:"amount_by_type"`
	TopCounterparties     []GroupTotalResponse       `json:"top_counterparties"`
	TopCategories         []GroupTotalResponse       `json:"top_categories"`
	MonthlyTrends         []MonthlyTrendResponse     `json:"monthly_trends"`
	FailedTransactions    int64                      `json:"failed_transactions"`
	RecurringTransactions int64                      `json:"recurring_transactions"`
}

// ToAnalyticsResponse converts a domain snapshot to its API shape.
func ToAnalyticsResponse(s *domain.AnalyticsSnapshot) AnalyticsResponse {
	resp := AnalyticsResponse{
		TotalTransactions:     s.TotalTransactions,
		TotalAmount:           s.TotalAmount,
		AverageAmount:         s.AverageAmount,
		CountByKind:           s.CountByKind,
		AmountByKind:          s.AmountByKind,
		TopCounterparties:     make([]GroupTotalResponse, len(s.TopCounterparties)),
		TopCategories:         make([]GroupTotalResponse, len(s.TopCategories)),
		MonthlyTrends:         make([]MonthlyTrendResponse, len(s.MonthlyTrends)),
		FailedTransactions:    s.FailedTransactions,
		RecurringTransactions: s.RecurringTransactions,
	}
	for i, g := range s.TopCounterparties {
		resp.TopCounterparties[i] = GroupTotalResponse(g)
	}
	for i, g := range s.TopCategories {
		resp.TopCategories[i] = GroupTotalResponse(g)
	}
	for i, m := range s.MonthlyTrends {
		resp.MonthlyTrends[i] = MonthlyTrendResponse(m)
	}
	return resp
}
