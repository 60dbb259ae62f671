package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/anujbalmiki/pennywise/internal/core/domain"
	portssvc "github.com/anujbalmiki/pennywise/internal/core/ports/services"
	"github.com/anujbalmiki/pennywise/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RecurrenceServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	service  portssvc.RecurrenceSvcFacade
}

func (suite *RecurrenceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.service = services.NewRecurrenceService(suite.mockRepo)
}

// txnOn builds a window transaction for a counterparty, amount and day of
// month, spread over the last few months.
func txnOn(counterparty string, amount float64, monthsAgo, day int) domain.Transaction {
	now := time.Now()
	occurred := time.Date(now.Year(), now.Month(), day, 9, 0, 0, 0, time.UTC).AddDate(0, -monthsAgo, 0)
	cp := counterparty
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.KindDebit,
		Amount:        decimal.NewFromFloat(amount),
		Currency:      "INR",
		Counterparty:  &cp,
		OccurredAt:    occurred,
	}
}

func (suite *RecurrenceServiceTestSuite) TestDetectRecurring_SubscriptionFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	window := []domain.Transaction{
		txnOn("Netflix", 199, 3, 5),
		txnOn("Netflix", 199, 2, 5),
		txnOn("Netflix", 199, 1, 5),
		txnOn("Amazon", 642.50, 1, 12), // one-off purchase
	}
	suite.mockRepo.On("FindTransactionsSince", ctx, userID, mock.AnythingOfType("time.Time")).Return(window, nil).Once()
	suite.mockRepo.On("MarkTransactionsRecurring", ctx, userID, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 3
	}), mock.AnythingOfType("time.Time")).Return(nil).Once()

	groups, err := suite.service.DetectRecurring(ctx, userID)

	suite.Require().NoError(err)
	suite.Require().Len(groups, 1)
	suite.Equal("Netflix", groups[0].Counterparty)
	suite.Equal(5, groups[0].DayOfMonth)
	suite.Equal(3, groups[0].Count)
	suite.True(groups[0].Amount.Equal(decimal.NewFromInt(199)))
	suite.Len(groups[0].Members, 3)
	// members come back chronological
	suite.True(groups[0].Members[0].OccurredAt.Before(groups[0].Members[1].OccurredAt))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecurrenceServiceTestSuite) TestDetectRecurring_DifferentAmountSplitsGroup() {
	ctx := context.Background()
	userID := uuid.NewString()

	// Same counterparty and day, but a price change breaks the exact-amount match.
	window := []domain.Transaction{
		txnOn("Spotify", 119, 2, 7),
		txnOn("Spotify", 129, 1, 7),
	}
	suite.mockRepo.On("FindTransactionsSince", ctx, userID, mock.AnythingOfType("time.Time")).Return(window, nil).Once()

	groups, err := suite.service.DetectRecurring(ctx, userID)

	suite.Require().NoError(err)
	suite.Empty(groups)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkTransactionsRecurring", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurrenceServiceTestSuite) TestDetectRecurring_GroupsOrderedByFrequency() {
	ctx := context.Background()
	userID := uuid.NewString()

	window := []domain.Transaction{
		txnOn("Spotify", 119, 2, 7),
		txnOn("Spotify", 119, 1, 7),
		txnOn("Netflix", 199, 3, 5),
		txnOn("Netflix", 199, 2, 5),
		txnOn("Netflix", 199, 1, 5),
	}
	suite.mockRepo.On("FindTransactionsSince", ctx, userID, mock.AnythingOfType("time.Time")).Return(window, nil).Once()
	suite.mockRepo.On("MarkTransactionsRecurring", ctx, userID, mock.AnythingOfType("[]string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	groups, err := suite.service.DetectRecurring(ctx, userID)

	suite.Require().NoError(err)
	suite.Require().Len(groups, 2)
	suite.Equal("Netflix", groups[0].Counterparty)
	suite.Equal("Spotify", groups[1].Counterparty)
}

func (suite *RecurrenceServiceTestSuite) TestDetectRecurring_EmptyWindow() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("FindTransactionsSince", ctx, userID, mock.AnythingOfType("time.Time")).Return([]domain.Transaction{}, nil).Once()

	groups, err := suite.service.DetectRecurring(ctx, userID)

	suite.Require().NoError(err)
	suite.Empty(groups)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkTransactionsRecurring", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecurrenceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecurrenceServiceTestSuite))
}
