package pgsql

import (
	"context"
	"fmt"

	"github.com/anujbalmiki/pennywise/internal/core/domain"
	portsrepo "github.com/anujbalmiki/pennywise/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAnalyticsRepository struct {
	BaseRepository
}

// newPgxAnalyticsRepository creates the read-only aggregation repository.
func newPgxAnalyticsRepository(pool *pgxpool.Pool) portsrepo.AnalyticsRepository {
	return &PgxAnalyticsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AnalyticsRepository = (*PgxAnalyticsRepository)(nil)

// windowClause appends the inclusive occurred_at bounds to the argument list
// and returns the matching SQL fragment (empty when the window is unbounded).
func windowClause(window domain.AnalyticsWindow, args *[]interface{}) string {
	clause := ""
	if window.Start != nil {
		*args = append(*args, *window.Start)
		clause += fmt.Sprintf(" AND occurred_at >= $%d", len(*args))
	}
	if window.End != nil {
		*args = append(*args, *window.End)
		clause += fmt.Sprintf(" AND occurred_at <= $%d", len(*args))
	}
	return clause
}

// GetTotals returns the headline aggregates. COALESCE keeps the sums zero
// instead of NULL on an empty window.
func (r *PgxAnalyticsRepository) GetTotals(ctx context.Context, userID string, window domain.AnalyticsWindow) (*domain.AnalyticsTotals, error) {
	args := []interface{}{userID}
	clause := windowClause(window, &args)

	query := fmt.Sprintf(`
		SELECT COUNT(*),
		       COALESCE(SUM(amount), 0),
		       COALESCE(AVG(amount), 0),
		       COUNT(*) FILTER (WHERE failed),
		       COUNT(*) FILTER (WHERE recurring)
		FROM transactions
		WHERE user_id = $1%s;
	`, clause)

	var totals domain.AnalyticsTotals
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&totals.Count,
		&totals.TotalAmount,
		&totals.AverageAmount,
		&totals.FailedCount,
		&totals.RecurringCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute transaction totals: %w", err)
	}
	return &totals, nil
}

// GetKindBreakdown returns count and amount grouped by kind.
func (r *PgxAnalyticsRepository) GetKindBreakdown(ctx context.Context, userID string, window domain.AnalyticsWindow) ([]domain.KindBreakdownRow, error) {
	args := []interface{}{userID}
	clause := windowClause(window, &args)

	query := fmt.Sprintf(`
		SELECT kind, COUNT(*), COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1%s
		GROUP BY kind
		ORDER BY kind;
	`, clause)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query kind breakdown: %w", err)
	}
	defer rows.Close()

	breakdown := make([]domain.KindBreakdownRow, 0)
	for rows.Next() {
		var row domain.KindBreakdownRow
		if err := rows.Scan(&row.Kind, &row.Count, &row.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan kind breakdown row: %w", err)
		}
		breakdown = append(breakdown, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating kind breakdown rows: %w", err)
	}
	return breakdown, nil
}

// GetTopCounterparties returns up to limit counterparties by summed amount.
func (r *PgxAnalyticsRepository) GetTopCounterparties(ctx context.Context, userID string, window domain.AnalyticsWindow, limit int) ([]domain.GroupTotal, error) {
	return r.topGroups(ctx, userID, window, limit, "counterparty")
}

// GetTopCategories returns up to limit categories by summed amount.
func (r *PgxAnalyticsRepository) GetTopCategories(ctx context.Context, userID string, window domain.AnalyticsWindow, limit int) ([]domain.GroupTotal, error) {
	return r.topGroups(ctx, userID, window, limit, "category")
}

// topGroups runs the shared top-N query for a nullable grouping column. The
// column name comes from a fixed internal call site, never user input.
func (r *PgxAnalyticsRepository) topGroups(ctx context.Context, userID string, window domain.AnalyticsWindow, limit int, column string) ([]domain.GroupTotal, error) {
	args := []interface{}{userID}
	clause := windowClause(window, &args)
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT %[1]s, COUNT(*), COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1%[2]s AND %[1]s IS NOT NULL
		GROUP BY %[1]s
		ORDER BY SUM(amount) DESC, %[1]s ASC
		LIMIT $%[3]d;
	`, column, clause, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top %s groups: %w", column, err)
	}
	defer rows.Close()

	groups := make([]domain.GroupTotal, 0)
	for rows.Next() {
		var g domain.GroupTotal
		if err := rows.Scan(&g.Name, &g.Count, &g.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan %s group row: %w", column, err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s group rows: %w", column, err)
	}
	return groups, nil
}

// GetMonthlyTrends returns the chronological (year, month) series.
func (r *PgxAnalyticsRepository) GetMonthlyTrends(ctx context.Context, userID string, window domain.AnalyticsWindow) ([]domain.MonthlyTrend, error) {
	args := []interface{}{userID}
	clause := windowClause(window, &args)

	query := fmt.Sprintf(`
		SELECT EXTRACT(YEAR FROM occurred_at)::int,
		       EXTRACT(MONTH FROM occurred_at)::int,
		       COUNT(*),
		       COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1%s
		GROUP BY 1, 2
		ORDER BY 1, 2;
	`, clause)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly trends: %w", err)
	}
	defer rows.Close()

	trends := make([]domain.MonthlyTrend, 0)
	for rows.Next() {
		var t domain.MonthlyTrend
		if err := rows.Scan(&t.Year, &t.Month, &t.Count, &t.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan monthly trend row: %w", err)
		}
		trends = append(trends, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly trend rows: %w", err)
	}
	return trends, nil
}
