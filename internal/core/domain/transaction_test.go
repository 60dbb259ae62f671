package domain_test

import (
	"testing"

	"github.com/anujbalmiki/pennywise/internal/apperrors"
	"github.com/anujbalmiki/pennywise/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validTransaction() domain.Transaction {
	return domain.Transaction{
		Kind:     domain.KindDebit,
		Amount:   decimal.NewFromInt(100),
		Currency: "INR",
	}
}

func TestTransactionValidate(t *testing.T) {
	t.Run("valid transaction passes", func(t *testing.T) {
		txn := validTransaction()
		assert.NoError(t, txn.Validate())
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		txn := validTransaction()
		txn.Amount = decimal.Zero
		assert.ErrorIs(t, txn.Validate(), apperrors.ErrValidation)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		txn := validTransaction()
		txn.Amount = decimal.NewFromInt(-5)
		assert.ErrorIs(t, txn.Validate(), apperrors.ErrValidation)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		txn := validTransaction()
		txn.Kind = domain.TransactionKind("refund")
		assert.ErrorIs(t, txn.Validate(), apperrors.ErrValidation)
	})

	t.Run("unknown method rejected", func(t *testing.T) {
		txn := validTransaction()
		method := domain.PaymentMethod("cheque")
		txn.Method = &method
		assert.ErrorIs(t, txn.Validate(), apperrors.ErrValidation)
	})

	t.Run("non-alphanumeric reference rejected", func(t *testing.T) {
		txn := validTransaction()
		ref := "REF-123"
		txn.Reference = &ref
		assert.ErrorIs(t, txn.Validate(), apperrors.ErrValidation)
	})

	t.Run("missing currency rejected", func(t *testing.T) {
		txn := validTransaction()
		txn.Currency = ""
		assert.ErrorIs(t, txn.Validate(), apperrors.ErrValidation)
	})
}

func TestParseTransactionKind(t *testing.T) {
	kind, ok := domain.ParseTransactionKind("  SPENT ")
	assert.True(t, ok)
	assert.Equal(t, domain.KindSpent, kind)

	_, ok = domain.ParseTransactionKind("refund")
	assert.False(t, ok)

	_, ok = domain.ParseTransactionKind("")
	assert.False(t, ok)
}

func TestParsePaymentMethod(t *testing.T) {
	method, ok := domain.ParsePaymentMethod("UPI")
	assert.True(t, ok)
	assert.Equal(t, domain.MethodUPI, method)

	_, ok = domain.ParsePaymentMethod("cheque")
	assert.False(t, ok)
}
