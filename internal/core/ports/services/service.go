package services

// ServiceContainer bundles all service facades for injection into the
// HTTP handlers.
type ServiceContainer struct {
	Message     MessageSvcFacade
	Transaction TransactionSvcFacade
	Recurrence  RecurrenceSvcFacade
	Analytics   AnalyticsSvcFacade
	Backup      BackupSvcFacade
}
