package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/anujbalmiki/pennywise/internal/apperrors"
	"github.com/anujbalmiki/pennywise/internal/core/domain"
	"github.com/anujbalmiki/pennywise/internal/core/ports"
	portssvc "github.com/anujbalmiki/pennywise/internal/core/ports/services"
	"github.com/anujbalmiki/pennywise/internal/core/services"
	"github.com/anujbalmiki/pennywise/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MessageServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockMessageRepository
	mockClassifier *MockClassifier
	mockCreator    *MockTransactionCreator
	service        portssvc.MessageSvcFacade
}

func (suite *MessageServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockMessageRepository)
	suite.mockClassifier = new(MockClassifier)
	suite.mockCreator = new(MockTransactionCreator)
	suite.service = services.NewMessageService(suite.mockRepo, suite.mockClassifier, suite.mockCreator)
}

func (suite *MessageServiceTestSuite) TestIngestMessage_TransactionDetected() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.IngestMessageRequest{
		Sender:     "HDFCBK",
		Body:       "Rs 500 spent on card at Amazon on 01-May-24",
		ObservedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	suite.mockRepo.On("SaveMessage", ctx, mock.MatchedBy(func(m domain.SourceMessage) bool {
		return m.UserID == userID && m.Sender == req.Sender && m.Body == req.Body && !m.Consumed
	})).Return(nil).Once()

	suite.mockClassifier.On("Classify", ctx, req.Sender, req.Body).Return(&ports.ClassificationResult{
		IsTransaction:   true,
		TransactionType: "spent",
		Amount:          floatPtr(500),
		Merchant:        "Amazon",
		PaymentMethod:   "card",
		Confidence:      0.95,
		Reason:          "card spend notification",
	}, nil).Once()

	created := &domain.Transaction{TransactionID: uuid.NewString(), Kind: domain.KindSpent}
	suite.mockCreator.On("CreateFromCandidate", ctx, userID, mock.MatchedBy(func(c domain.Transaction) bool {
		return c.Kind == domain.KindSpent && c.SourceMessageID != nil && c.Counterparty != nil && *c.Counterparty == "Amazon"
	})).Return(created, nil).Once()

	suite.mockRepo.On("MarkMessageConsumed", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.IngestMessage(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(created.TransactionID, result.Transaction.TransactionID)
	suite.Equal(0.95, result.Confidence)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockClassifier.AssertExpectations(suite.T())
	suite.mockCreator.AssertExpectations(suite.T())
}

func (suite *MessageServiceTestSuite) TestIngestMessage_NotATransaction() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.IngestMessageRequest{
		Sender:     "HDFCBK",
		Body:       "Your OTP for login is 482913",
		ObservedAt: time.Now(),
	}

	suite.mockRepo.On("SaveMessage", ctx, mock.AnythingOfType("domain.SourceMessage")).Return(nil).Once()
	suite.mockClassifier.On("Classify", ctx, req.Sender, req.Body).Return(&ports.ClassificationResult{
		IsTransaction: false,
		Reason:        "one-time password message",
	}, nil).Once()

	result, err := suite.service.IngestMessage(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Nil(result)
	// message must stay unconsumed: no MarkMessageConsumed call
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkMessageConsumed", mock.Anything, mock.Anything, mock.Anything)
	suite.mockCreator.AssertNotCalled(suite.T(), "CreateFromCandidate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MessageServiceTestSuite) TestIngestMessage_ClassifierUnavailable() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.IngestMessageRequest{Sender: "HDFCBK", Body: "Rs 100 debited", ObservedAt: time.Now()}

	suite.mockRepo.On("SaveMessage", ctx, mock.AnythingOfType("domain.SourceMessage")).Return(nil).Once()
	suite.mockClassifier.On("Classify", ctx, req.Sender, req.Body).
		Return(nil, apperrors.ErrClassifierUnavailable).Once()

	result, err := suite.service.IngestMessage(ctx, userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrClassifierUnavailable)
	suite.Nil(result)
	// message was persisted first, so a later rescan can pick it up
	suite.mockRepo.AssertCalled(suite.T(), "SaveMessage", ctx, mock.AnythingOfType("domain.SourceMessage"))
}

func (suite *MessageServiceTestSuite) TestIngestMessage_NormalizationFailureLeavesMessagePending() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.IngestMessageRequest{Sender: "HDFCBK", Body: "spent something", ObservedAt: time.Now()}

	suite.mockRepo.On("SaveMessage", ctx, mock.AnythingOfType("domain.SourceMessage")).Return(nil).Once()
	// claims a transaction but omits the amount
	suite.mockClassifier.On("Classify", ctx, req.Sender, req.Body).Return(&ports.ClassificationResult{
		IsTransaction:   true,
		TransactionType: "spent",
	}, nil).Once()

	result, err := suite.service.IngestMessage(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Nil(result)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkMessageConsumed", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MessageServiceTestSuite) TestRescanMessages_ProcessesBacklog() {
	ctx := context.Background()
	userID := uuid.NewString()

	pending := []domain.SourceMessage{
		{MessageID: uuid.NewString(), UserID: userID, Sender: "HDFCBK", Body: "Rs 199 debited for Netflix", ObservedAt: time.Now()},
		{MessageID: uuid.NewString(), UserID: userID, Sender: "AD-PROMO", Body: "Mega sale this weekend!", ObservedAt: time.Now()},
	}
	suite.mockRepo.On("FindUnconsumedMessages", ctx, userID).Return(pending, nil).Once()

	suite.mockClassifier.On("Classify", ctx, "HDFCBK", pending[0].Body).Return(&ports.ClassificationResult{
		IsTransaction:   true,
		TransactionType: "debit",
		Amount:          floatPtr(199),
		Merchant:        "Netflix",
	}, nil).Once()
	suite.mockClassifier.On("Classify", ctx, "AD-PROMO", pending[1].Body).Return(&ports.ClassificationResult{
		IsTransaction: false,
	}, nil).Once()

	created := &domain.Transaction{TransactionID: uuid.NewString(), Kind: domain.KindDebit}
	suite.mockCreator.On("CreateFromCandidate", ctx, userID, mock.AnythingOfType("domain.Transaction")).Return(created, nil).Once()
	suite.mockRepo.On("MarkMessageConsumed", ctx, pending[0].MessageID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	results, err := suite.service.RescanMessages(ctx, userID)

	suite.Require().NoError(err)
	suite.Len(results, 1)
	suite.Equal(pending[0].MessageID, results[0].MessageID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockClassifier.AssertExpectations(suite.T())
}

func (suite *MessageServiceTestSuite) TestRescanMessages_StopsOnClassifierOutage() {
	ctx := context.Background()
	userID := uuid.NewString()

	pending := []domain.SourceMessage{
		{MessageID: uuid.NewString(), UserID: userID, Sender: "HDFCBK", Body: "msg one", ObservedAt: time.Now()},
		{MessageID: uuid.NewString(), UserID: userID, Sender: "HDFCBK", Body: "msg two", ObservedAt: time.Now()},
	}
	suite.mockRepo.On("FindUnconsumedMessages", ctx, userID).Return(pending, nil).Once()
	suite.mockClassifier.On("Classify", ctx, "HDFCBK", "msg one").
		Return(nil, apperrors.ErrClassifierUnavailable).Once()

	results, err := suite.service.RescanMessages(ctx, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrClassifierUnavailable)
	suite.Empty(results)
	// second message never hits the classifier
	suite.mockClassifier.AssertNumberOfCalls(suite.T(), "Classify", 1)
}

func (suite *MessageServiceTestSuite) TestRescanMessages_EmptyBacklog() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("FindUnconsumedMessages", ctx, userID).Return([]domain.SourceMessage{}, nil).Once()

	results, err := suite.service.RescanMessages(ctx, userID)

	suite.Require().NoError(err)
	suite.Empty(results)
}

func (suite *MessageServiceTestSuite) TestGetMessageStatistics() {
	ctx := context.Background()
	userID := uuid.NewString()

	stats := &domain.MessageStatistics{
		TotalMessages:    10,
		ConsumedMessages: 7,
		PendingMessages:  3,
		TopSenders:       []domain.SenderCount{{Sender: "HDFCBK", Count: 6}},
	}
	suite.mockRepo.On("GetMessageStatistics", ctx, userID).Return(stats, nil).Once()

	got, err := suite.service.GetMessageStatistics(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(int64(10), got.TotalMessages)
	suite.Equal(int64(3), got.PendingMessages)
}

func (suite *MessageServiceTestSuite) TestListMessages_NilBecomesEmpty() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("FindMessages", ctx, userID, 50, 0).Return(nil, nil).Once()

	msgs, err := suite.service.ListMessages(ctx, userID, 50, 0)

	suite.Require().NoError(err)
	assert.NotNil(suite.T(), msgs)
	suite.Empty(msgs)
}

func TestMessageServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MessageServiceTestSuite))
}
