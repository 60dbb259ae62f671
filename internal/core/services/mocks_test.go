package services_test

import (
	"context"
	"time"

	"github.com/anujbalmiki/pennywise/internal/core/domain"
	"github.com/anujbalmiki/pennywise/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// --- Mock SourceMessageRepository ---

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) SaveMessage(ctx context.Context, msg domain.SourceMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) FindMessageByID(ctx context.Context, userID, messageID string) (*domain.SourceMessage, error) {
	args := m.Called(ctx, userID, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceMessage), args.Error(1)
}

func (m *MockMessageRepository) FindMessages(ctx context.Context, userID string, limit, offset int) ([]domain.SourceMessage, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SourceMessage), args.Error(1)
}

func (m *MockMessageRepository) FindUnconsumedMessages(ctx context.Context, userID string) ([]domain.SourceMessage, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SourceMessage), args.Error(1)
}

func (m *MockMessageRepository) GetMessageStatistics(ctx context.Context, userID string) (*domain.MessageStatistics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MessageStatistics), args.Error(1)
}

func (m *MockMessageRepository) MarkMessageConsumed(ctx context.Context, messageID string, consumedAt time.Time) error {
	args := m.Called(ctx, messageID, consumedAt)
	return args.Error(0)
}

func (m *MockMessageRepository) DeleteMessage(ctx context.Context, userID, messageID string) error {
	args := m.Called(ctx, userID, messageID)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsSince(ctx context.Context, userID string, since time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SetTransactionCategory(ctx context.Context, userID, transactionID, category string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, transactionID, category, updatedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkTransactionsRecurring(ctx context.Context, userID string, transactionIDs []string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, transactionIDs, updatedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

// --- Mock AnalyticsRepository ---

type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) GetTotals(ctx context.Context, userID string, window domain.AnalyticsWindow) (*domain.AnalyticsTotals, error) {
	args := m.Called(ctx, userID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalyticsTotals), args.Error(1)
}

func (m *MockAnalyticsRepository) GetKindBreakdown(ctx context.Context, userID string, window domain.AnalyticsWindow) ([]domain.KindBreakdownRow, error) {
	args := m.Called(ctx, userID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KindBreakdownRow), args.Error(1)
}

func (m *MockAnalyticsRepository) GetTopCounterparties(ctx context.Context, userID string, window domain.AnalyticsWindow, limit int) ([]domain.GroupTotal, error) {
	args := m.Called(ctx, userID, window, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroupTotal), args.Error(1)
}

func (m *MockAnalyticsRepository) GetTopCategories(ctx context.Context, userID string, window domain.AnalyticsWindow, limit int) ([]domain.GroupTotal, error) {
	args := m.Called(ctx, userID, window, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroupTotal), args.Error(1)
}

func (m *MockAnalyticsRepository) GetMonthlyTrends(ctx context.Context, userID string, window domain.AnalyticsWindow) ([]domain.MonthlyTrend, error) {
	args := m.Called(ctx, userID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyTrend), args.Error(1)
}

// --- Mock TransactionClassifier ---

type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, sender, body string) (*ports.ClassificationResult, error) {
	args := m.Called(ctx, sender, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.ClassificationResult), args.Error(1)
}

func (m *MockClassifier) ClassifyBatch(ctx context.Context, content, format string) ([]ports.ClassificationResult, error) {
	args := m.Called(ctx, content, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.ClassificationResult), args.Error(1)
}

// --- Mock TransactionCreatorSvc ---

type MockTransactionCreator struct {
	mock.Mock
}

func (m *MockTransactionCreator) CreateFromCandidate(ctx context.Context, userID string, candidate domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, candidate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }
