package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/anujbalmiki/pennywise/internal/apperrors"
	"github.com/anujbalmiki/pennywise/internal/core/domain"
	"github.com/anujbalmiki/pennywise/internal/core/ports"
	"github.com/shopspring/decimal"
)

const defaultCurrency = "INR"

// isoDateLayouts are tried in order when parsing the classifier's date field.
var isoDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizeClassification converts raw classifier output into a transaction
// candidate. It is a pure function: no I/O, and identical input always yields
// identical output for a fixed now.
//
// Kind is required and must map onto the closed enumeration; method is
// optional and silently omitted when unmapped. A missing or non-positive
// amount rejects the candidate. The date is best-effort: any parse failure
// falls back to now instead of rejecting.
//
// The returned candidate has no identity or audit fields; those are assigned
// at persistence time.
func NormalizeClassification(res ports.ClassificationResult, now time.Time) (domain.Transaction, error) {
	kind, ok := domain.ParseTransactionKind(res.TransactionType)
	if !ok {
		return domain.Transaction{}, fmt.Errorf("transaction type %q is not recognised: %w", res.TransactionType, apperrors.ErrValidation)
	}

	if res.Amount == nil {
		return domain.Transaction{}, fmt.Errorf("amount is missing: %w", apperrors.ErrValidation)
	}
	amount := decimal.NewFromFloat(*res.Amount)
	if !amount.IsPositive() {
		return domain.Transaction{}, fmt.Errorf("amount must be positive, got %s: %w", amount, apperrors.ErrValidation)
	}

	currency := strings.TrimSpace(res.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	candidate := domain.Transaction{
		Kind:          kind,
		Amount:        amount,
		Currency:      currency,
		Counterparty:  optionalString(res.Merchant),
		OccurredAt:    parseOccurredAt(res.TransactionDate, now),
		Reference:     optionalString(res.ReferenceNumber),
		AccountRef:    optionalString(res.AccountNumber),
		InstrumentRef: optionalString(res.CardNumber),
		Notes:         optionalString(res.Remarks),
		Tags:          []string{},
		Failed:        res.IsFailed,
	}

	if method, ok := domain.ParsePaymentMethod(res.PaymentMethod); ok {
		candidate.Method = &method
	}

	if err := candidate.Validate(); err != nil {
		return domain.Transaction{}, err
	}
	return candidate, nil
}

// parseOccurredAt parses an ISO-8601-ish date string, falling back to now.
func parseOccurredAt(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return now
	}
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return now
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
