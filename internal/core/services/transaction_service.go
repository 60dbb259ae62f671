package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anujbalmiki/pennywise/internal/apperrors"
	"github.com/anujbalmiki/pennywise/internal/core/domain"
	portsrepo "github.com/anujbalmiki/pennywise/internal/core/ports/repositories"
	portssvc "github.com/anujbalmiki/pennywise/internal/core/ports/services"
	"github.com/anujbalmiki/pennywise/internal/dto"
	"github.com/anujbalmiki/pennywise/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type transactionService struct {
	txnRepo portsrepo.TransactionRepository
}

// NewTransactionService creates the transaction CRUD service.
func NewTransactionService(txnRepo portsrepo.TransactionRepository) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo}
}

func (s *transactionService) CreateFromCandidate(ctx context.Context, userID string, candidate domain.Transaction) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	candidate.TransactionID = uuid.NewString()
	candidate.UserID = userID
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	if candidate.Tags == nil {
		candidate.Tags = []string{}
	}

	if err := candidate.Validate(); err != nil {
		return nil, fmt.Errorf("transaction candidate rejected: %w", err)
	}

	if err := s.txnRepo.SaveTransaction(ctx, candidate); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.categorize(ctx, &candidate)

	logger.Info("Transaction created", slog.String("transaction_id", candidate.TransactionID), slog.String("kind", string(candidate.Kind)), slog.String("amount", candidate.Amount.String()))
	return &candidate, nil
}

// categorize applies the keyword categorizer as a post-create side effect.
// Categorization failure never fails the create; the transaction just stays
// uncategorized.
func (s *transactionService) categorize(ctx context.Context, txn *domain.Transaction) {
	if txn.Category != nil {
		return // caller-provided category wins
	}
	var counterparty, notes string
	if txn.Counterparty != nil {
		counterparty = *txn.Counterparty
	}
	if txn.Notes != nil {
		notes = *txn.Notes
	}
	category := CategorizeCounterparty(counterparty, notes)
	if category == "" {
		return
	}
	if err := s.txnRepo.SetTransactionCategory(ctx, txn.UserID, txn.TransactionID, category, time.Now()); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to set transaction category", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
		return
	}
	txn.Category = &category
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	kind, ok := domain.ParseTransactionKind(req.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown transaction kind %q: %w", req.Kind, apperrors.ErrValidation)
	}

	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	candidate := domain.Transaction{
		Kind:          kind,
		Amount:        decimal.NewFromFloat(req.Amount),
		Currency:      currency,
		Counterparty:  req.Counterparty,
		Category:      req.Category,
		OccurredAt:    req.OccurredAt,
		Reference:     req.Reference,
		AccountRef:    req.AccountRef,
		InstrumentRef: req.InstrumentRef,
		Notes:         req.Notes,
		Tags:          req.Tags,
		Failed:        req.Failed,
	}
	if req.Method != nil {
		method, ok := domain.ParsePaymentMethod(*req.Method)
		if !ok {
			return nil, fmt.Errorf("unknown payment method %q: %w", *req.Method, apperrors.ErrValidation)
		}
		candidate.Method = &method
	}

	return s.CreateFromCandidate(ctx, userID, candidate)
}

func (s *transactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	filter, err := buildTransactionFilter(params)
	if err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.FindTransactions(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}

func buildTransactionFilter(params dto.ListTransactionsParams) (domain.TransactionFilter, error) {
	filter := domain.TransactionFilter{
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		Counterparty: params.Counterparty,
		Category:     params.Category,
		Failed:       params.Failed,
		Limit:        params.Limit,
		Offset:       params.Offset,
	}
	if params.MinAmount != nil {
		min := decimal.NewFromFloat(*params.MinAmount)
		filter.MinAmount = &min
	}
	if params.MaxAmount != nil {
		max := decimal.NewFromFloat(*params.MaxAmount)
		filter.MaxAmount = &max
	}
	if params.Kind != nil {
		kind, ok := domain.ParseTransactionKind(*params.Kind)
		if !ok {
			return domain.TransactionFilter{}, fmt.Errorf("unknown transaction kind %q: %w", *params.Kind, apperrors.ErrValidation)
		}
		filter.Kind = &kind
	}
	if params.Method != nil {
		method, ok := domain.ParsePaymentMethod(*params.Method)
		if !ok {
			return domain.TransactionFilter{}, fmt.Errorf("unknown payment method %q: %w", *params.Method, apperrors.ErrValidation)
		}
		filter.Method = &method
	}
	if params.Tag != nil && *params.Tag != "" {
		filter.Tags = []string{*params.Tag}
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return filter, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %s for update: %w", transactionID, err)
	}
	if txn == nil {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}

	if req.Counterparty != nil {
		txn.Counterparty = req.Counterparty
	}
	if req.Category != nil {
		txn.Category = req.Category
	}
	if req.Notes != nil {
		txn.Notes = req.Notes
	}
	if req.Tags != nil {
		txn.Tags = req.Tags
	}
	txn.UpdatedAt = time.Now()

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, userID, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	return nil
}
