package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/anujbalmiki/pennywise/internal/apperrors"
	"github.com/anujbalmiki/pennywise/internal/core/domain"
	portssvc "github.com/anujbalmiki/pennywise/internal/core/ports/services"
	"github.com/anujbalmiki/pennywise/internal/core/services"
	"github.com/anujbalmiki/pennywise/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	service  portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.service = services.NewTransactionService(suite.mockRepo)
}

func (suite *TransactionServiceTestSuite) TestCreateFromCandidate_AssignsIdentityAndCategorizes() {
	ctx := context.Background()
	userID := uuid.NewString()
	candidate := domain.Transaction{
		Kind:         domain.KindSpent,
		Amount:       decimal.NewFromInt(500),
		Currency:     "INR",
		Counterparty: strPtr("Amazon"),
		OccurredAt:   time.Now(),
	}

	suite.mockRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.TransactionID != "" && t.UserID == userID && !t.CreatedAt.IsZero()
	})).Return(nil).Once()
	suite.mockRepo.On("SetTransactionCategory", ctx, userID, mock.AnythingOfType("string"), "shopping", mock.AnythingOfType("time.Time")).Return(nil).Once()

	txn, err := suite.service.CreateFromCandidate(ctx, userID, candidate)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Require().NotNil(txn.Category)
	suite.Equal("shopping", *txn.Category)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateFromCandidate_CallerCategoryWins() {
	ctx := context.Background()
	userID := uuid.NewString()
	candidate := domain.Transaction{
		Kind:         domain.KindSpent,
		Amount:       decimal.NewFromInt(500),
		Currency:     "INR",
		Counterparty: strPtr("Amazon"),
		Category:     strPtr("gifts"),
		OccurredAt:   time.Now(),
	}

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateFromCandidate(ctx, userID, candidate)

	suite.Require().NoError(err)
	suite.Equal("gifts", *txn.Category)
	suite.mockRepo.AssertNotCalled(suite.T(), "SetTransactionCategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateFromCandidate_InvalidCandidateRejected() {
	ctx := context.Background()
	userID := uuid.NewString()
	candidate := domain.Transaction{
		Kind:       domain.KindSpent,
		Amount:     decimal.NewFromInt(-10),
		Currency:   "INR",
		OccurredAt: time.Now(),
	}

	txn, err := suite.service.CreateFromCandidate(ctx, userID, candidate)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ManualEntry() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		Kind:       "payment",
		Amount:     1250.75,
		OccurredAt: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		Method:     strPtr("upi"),
	}

	suite.mockRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Kind == domain.KindPayment && t.Currency == "INR" && t.Method != nil && *t.Method == domain.MethodUPI
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, userID, req)

	suite.Require().NoError(err)
	suite.True(txn.Amount.Equal(decimal.NewFromFloat(1250.75)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownKindRejected() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateTransactionRequest{
		Kind:       "refund",
		Amount:     100,
		OccurredAt: time.Now(),
	}

	txn, err := suite.service.CreateTransaction(ctx, userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_BuildsFilter() {
	ctx := context.Background()
	userID := uuid.NewString()
	kind := "debit"
	minAmount := 100.0
	params := dto.ListTransactionsParams{
		Kind:      &kind,
		MinAmount: &minAmount,
		Limit:     20,
	}

	suite.mockRepo.On("FindTransactions", ctx, userID, mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return f.Kind != nil && *f.Kind == domain.KindDebit &&
			f.MinAmount != nil && f.MinAmount.Equal(decimal.NewFromInt(100)) &&
			f.Limit == 20
	})).Return([]domain.Transaction{}, nil).Once()

	txns, err := suite.service.ListTransactions(ctx, userID, params)

	suite.Require().NoError(err)
	suite.NotNil(txns)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AppliesOnlySetFields() {
	ctx := context.Background()
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	existing := &domain.Transaction{
		TransactionID: transactionID,
		UserID:        userID,
		Kind:          domain.KindDebit,
		Amount:        decimal.NewFromInt(199),
		Currency:      "INR",
		Counterparty:  strPtr("Netflix"),
		Notes:         strPtr("subscription"),
		OccurredAt:    time.Now(),
	}
	suite.mockRepo.On("FindTransactionByID", ctx, userID, transactionID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Category != nil && *t.Category == "entertainment" &&
			t.Counterparty != nil && *t.Counterparty == "Netflix"
	})).Return(nil).Once()

	req := dto.UpdateTransactionRequest{Category: strPtr("entertainment")}
	txn, err := suite.service.UpdateTransaction(ctx, userID, transactionID, req)

	suite.Require().NoError(err)
	suite.Equal("entertainment", *txn.Category)
	suite.Equal("subscription", *txn.Notes)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockRepo.On("FindTransactionByID", ctx, userID, transactionID).Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.UpdateTransaction(ctx, userID, transactionID, dto.UpdateTransactionRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(txn)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
