package services

import (
	"context"
	"fmt"

	"github.com/anujbalmiki/pennywise/internal/core/domain"
	portsrepo "github.com/anujbalmiki/pennywise/internal/core/ports/repositories"
	portssvc "github.com/anujbalmiki/pennywise/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// topGroupLimit bounds the counterparty and category breakdowns.
const topGroupLimit = 10

type analyticsService struct {
	analyticsRepo portsrepo.AnalyticsRepository
}

// NewAnalyticsService creates the on-demand analytics aggregator.
func NewAnalyticsService(analyticsRepo portsrepo.AnalyticsRepository) portssvc.AnalyticsSvcFacade {
	return &analyticsService{analyticsRepo: analyticsRepo}
}

func (s *analyticsService) Aggregate(ctx context.Context, userID string, window domain.AnalyticsWindow) (*domain.AnalyticsSnapshot, error) {
	totals, err := s.analyticsRepo.GetTotals(ctx, userID, window)
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics totals: %w", err)
	}

	snapshot := &domain.AnalyticsSnapshot{
		TotalTransactions:     totals.Count,
		TotalAmount:           totals.TotalAmount,
		AverageAmount:         totals.AverageAmount,
		FailedTransactions:    totals.FailedCount,
		RecurringTransactions: totals.RecurringCount,
		CountByKind:           map[string]int64{},
		AmountByKind:          map[string]decimal.Decimal{},
		TopCounterparties:     []domain.GroupTotal{},
		TopCategories:         []domain.GroupTotal{},
		MonthlyTrends:         []domain.MonthlyTrend{},
	}
	if totals.Count == 0 {
		// Nothing in the window; skip the breakdown queries.
		return snapshot, nil
	}

	breakdown, err := s.analyticsRepo.GetKindBreakdown(ctx, userID, window)
	if err != nil {
		return nil, fmt.Errorf("failed to compute kind breakdown: %w", err)
	}
	for _, row := range breakdown {
		snapshot.CountByKind[string(row.Kind)] = row.Count
		snapshot.AmountByKind[string(row.Kind)] = row.Amount
	}

	if snapshot.TopCounterparties, err = s.analyticsRepo.GetTopCounterparties(ctx, userID, window, topGroupLimit); err != nil {
		return nil, fmt.Errorf("failed to compute top counterparties: %w", err)
	}
	if snapshot.TopCategories, err = s.analyticsRepo.GetTopCategories(ctx, userID, window, topGroupLimit); err != nil {
		return nil, fmt.Errorf("failed to compute top categories: %w", err)
	}
	if snapshot.MonthlyTrends, err = s.analyticsRepo.GetMonthlyTrends(ctx, userID, window); err != nil {
		return nil, fmt.Errorf("failed to compute monthly trends: %w", err)
	}

	if snapshot.TopCounterparties == nil {
		snapshot.TopCounterparties = []domain.GroupTotal{}
	}
	if snapshot.TopCategories == nil {
		snapshot.TopCategories = []domain.GroupTotal{}
	}
	if snapshot.MonthlyTrends == nil {
		snapshot.MonthlyTrends = []domain.MonthlyTrend{}
	}
	return snapshot, nil
}
