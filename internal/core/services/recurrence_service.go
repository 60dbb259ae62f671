package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/anujbalmiki/pennywise/internal/core/domain"
	portsrepo "github.com/anujbalmiki/pennywise/internal/core/ports/repositories"
	portssvc "github.com/anujbalmiki/pennywise/internal/core/ports/services"
	"github.com/anujbalmiki/pennywise/internal/middleware"
)

// recurrenceWindowDays is the trailing window the detector looks at.
const recurrenceWindowDays = 180

// recurrenceMinCount is the minimum group size to call a charge recurring.
const recurrenceMinCount = 2

type recurrenceService struct {
	txnRepo portsrepo.TransactionRepository
	now     func() time.Time
}

// NewRecurrenceService creates the recurring-charge detector.
func NewRecurrenceService(txnRepo portsrepo.TransactionRepository) portssvc.RecurrenceSvcFacade {
	return &recurrenceService{txnRepo: txnRepo, now: time.Now}
}

func (s *recurrenceService) DetectRecurring(ctx context.Context, userID string) ([]domain.RecurrenceGroup, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	since := s.now().AddDate(0, 0, -recurrenceWindowDays)
	txns, err := s.txnRepo.FindTransactionsSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for recurrence detection: %w", err)
	}

	groups := groupRecurring(txns)

	recurringIDs := make([]string, 0)
	for _, g := range groups {
		for _, m := range g.Members {
			recurringIDs = append(recurringIDs, m.TransactionID)
		}
	}
	if len(recurringIDs) > 0 {
		if err := s.txnRepo.MarkTransactionsRecurring(ctx, userID, recurringIDs, s.now()); err != nil {
			return nil, fmt.Errorf("failed to flag recurring transactions: %w", err)
		}
	}

	logger.Info("Recurrence detection finished", slog.Int("window_transactions", len(txns)), slog.Int("groups", len(groups)), slog.Int("flagged", len(recurringIDs)))
	return groups, nil
}

// groupRecurring buckets transactions by (counterparty, exact amount, day of
// month) and keeps the buckets with at least recurrenceMinCount members.
// Groups come back ordered by member count descending; member lists are
// chronological.
func groupRecurring(txns []domain.Transaction) []domain.RecurrenceGroup {
	type groupKey struct {
		counterparty string
		amount       string
		day          int
	}

	buckets := make(map[groupKey][]domain.Transaction)
	order := make([]groupKey, 0)
	for _, txn := range txns {
		if txn.Counterparty == nil || *txn.Counterparty == "" {
			continue
		}
		key := groupKey{
			counterparty: *txn.Counterparty,
			amount:       txn.Amount.String(),
			day:          txn.OccurredAt.Day(),
		}
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], txn)
	}

	groups := make([]domain.RecurrenceGroup, 0)
	for _, key := range order {
		members := buckets[key]
		if len(members) < recurrenceMinCount {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].OccurredAt.Before(members[j].OccurredAt)
		})
		group := domain.RecurrenceGroup{
			Counterparty: key.counterparty,
			Amount:       members[0].Amount,
			DayOfMonth:   key.day,
			Count:        len(members),
			Members:      make([]domain.RecurrenceMember, len(members)),
		}
		for i, m := range members {
			group.Members[i] = domain.RecurrenceMember{
				TransactionID: m.TransactionID,
				OccurredAt:    m.OccurredAt,
				Amount:        m.Amount,
			}
		}
		groups = append(groups, group)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups
}
