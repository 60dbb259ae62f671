package services

import (
	"github.com/anujbalmiki/pennywise/internal/core/ports"
	portsrepo "github.com/anujbalmiki/pennywise/internal/core/ports/repositories"
	portssvc "github.com/anujbalmiki/pennywise/internal/core/ports/services"
	"github.com/anujbalmiki/pennywise/internal/platform/config"
)

// NewServiceContainer wires the service graph. The transaction service is
// built first because both ingestion pipelines (message and backup) depend on
// its creator interface.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, classifier ports.TransactionClassifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Transaction = NewTransactionService(repos.TransactionRepo)

	txnCreator := container.Transaction.(portssvc.TransactionCreatorSvc)
	container.Message = NewMessageService(repos.MessageRepo, classifier, txnCreator)
	container.Backup = NewBackupService(classifier, txnCreator)

	container.Recurrence = NewRecurrenceService(repos.TransactionRepo)
	container.Analytics = NewAnalyticsService(repos.AnalyticsRepo)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.MessageSvcFacade     = (*messageService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.RecurrenceSvcFacade  = (*recurrenceService)(nil)
	_ portssvc.AnalyticsSvcFacade   = (*analyticsService)(nil)
	_ portssvc.BackupSvcFacade      = (*backupService)(nil)
)
