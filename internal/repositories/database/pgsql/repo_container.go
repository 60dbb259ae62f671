package pgsql

import (
	portsrepo "github.com/anujbalmiki/pennywise/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres-backed repository set.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MessageRepo:     newPgxMessageRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		AnalyticsRepo:   newPgxAnalyticsRepository(dbPool),
	}
}
