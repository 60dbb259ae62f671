package repositories

import (
	"context"

	"github.com/anujbalmiki/pennywise/internal/core/domain"
)

// AnalyticsRepository exposes the store's aggregation primitives over one
// user's transactions. All methods are read-only and window-scoped; an empty
// window matches everything.
type AnalyticsRepository interface {
	// GetTotals returns count, sum, average and the failed/recurring counts.
	// It always returns a row; with no matching transactions every value is
	// zero.
	GetTotals(ctx context.Context, userID string, window domain.AnalyticsWindow) (*domain.AnalyticsTotals, error)

	// GetKindBreakdown returns count and amount grouped by transaction kind.
	GetKindBreakdown(ctx context.Context, userID string, window domain.AnalyticsWindow) ([]domain.KindBreakdownRow, error)

	// GetTopCounterparties returns up to limit counterparties ordered by
	// summed amount descending. Transactions without a counterparty are
	// excluded.
	GetTopCounterparties(ctx context.Context, userID string, window domain.AnalyticsWindow, limit int) ([]domain.GroupTotal, error)

	// GetTopCategories is GetTopCounterparties for the category column.
	GetTopCategories(ctx context.Context, userID string, window domain.AnalyticsWindow, limit int) ([]domain.GroupTotal, error)

	// GetMonthlyTrends returns the (year, month) count/amount series in
	// chronological order.
	GetMonthlyTrends(ctx context.Context, userID string, window domain.AnalyticsWindow) ([]domain.MonthlyTrend, error)
}
