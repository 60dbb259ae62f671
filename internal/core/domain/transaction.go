package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/anujbalmiki/pennywise/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionKind is the closed set of transaction types the pipeline
// recognises. Anything outside this set is rejected at normalization time.
type TransactionKind string

const (
	KindCredit   TransactionKind = "credit"
	KindDebit    TransactionKind = "debit"
	KindPayment  TransactionKind = "payment"
	KindTransfer TransactionKind = "transfer"
	KindSpent    TransactionKind = "spent"
	KindReceived TransactionKind = "received"
)

var transactionKinds = map[string]TransactionKind{
	"credit":   KindCredit,
	"debit":    KindDebit,
	"payment":  KindPayment,
	"transfer": KindTransfer,
	"spent":    KindSpent,
	"received": KindReceived,
}

// ParseTransactionKind maps a free-text kind onto the closed enumeration.
// Matching is case-insensitive and exact; unknown values report ok=false.
func ParseTransactionKind(s string) (TransactionKind, bool) {
	k, ok := transactionKinds[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

// PaymentMethod is the closed set of recognised payment instruments.
type PaymentMethod string

const (
	MethodUPI    PaymentMethod = "upi"
	MethodCard   PaymentMethod = "card"
	MethodNEFT   PaymentMethod = "neft"
	MethodIMPS   PaymentMethod = "imps"
	MethodRTGS   PaymentMethod = "rtgs"
	MethodCash   PaymentMethod = "cash"
	MethodWallet PaymentMethod = "wallet"
)

var paymentMethods = map[string]PaymentMethod{
	"upi":    MethodUPI,
	"card":   MethodCard,
	"neft":   MethodNEFT,
	"imps":   MethodIMPS,
	"rtgs":   MethodRTGS,
	"cash":   MethodCash,
	"wallet": MethodWallet,
}

// ParsePaymentMethod maps a free-text method onto the closed enumeration.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	m, ok := paymentMethods[strings.ToLower(strings.TrimSpace(s))]
	return m, ok
}

var referencePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// Transaction is the canonical record extracted from a source message,
// manual entry, or bulk import.
type Transaction struct {
	TransactionID   string           `json:"transactionID"`             // Primary Key (UUID)
	UserID          string           `json:"userID"`                    // Owner
	SourceMessageID *string          `json:"sourceMessageID,omitempty"` // Nil for manual/bulk entries
	Kind            TransactionKind  `json:"kind"`
	Amount          decimal.Decimal  `json:"amount"` // Strictly positive
	Currency        string           `json:"currency"`
	Counterparty    *string          `json:"counterparty,omitempty"` // Merchant or recipient
	Category        *string          `json:"category,omitempty"`     // Assigned post-create
	OccurredAt      time.Time        `json:"occurredAt"`
	Reference       *string          `json:"reference,omitempty"` // Alphanumeric only
	AccountRef      *string          `json:"accountRef,omitempty"`
	InstrumentRef   *string          `json:"instrumentRef,omitempty"` // Card last-4 etc.
	Method          *PaymentMethod   `json:"method,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	Tags            []string         `json:"tags"`
	Failed          bool             `json:"failed"`
	Recurring       bool             `json:"recurring"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// Validate enforces the Transaction invariants: positive amount, alphanumeric
// reference, and kind/method values inside their closed sets. Violations are
// reported as apperrors.ErrValidation so callers can map them to a rejected
// request rather than an internal failure.
func (t *Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s: %w", t.Amount, apperrors.ErrValidation)
	}
	if _, ok := ParseTransactionKind(string(t.Kind)); !ok {
		return fmt.Errorf("unknown transaction kind %q: %w", t.Kind, apperrors.ErrValidation)
	}
	if t.Method != nil {
		if _, ok := ParsePaymentMethod(string(*t.Method)); !ok {
			return fmt.Errorf("unknown payment method %q: %w", *t.Method, apperrors.ErrValidation)
		}
	}
	if t.Reference != nil && !referencePattern.MatchString(*t.Reference) {
		return fmt.Errorf("reference must be alphanumeric: %w", apperrors.ErrValidation)
	}
	if t.Currency == "" {
		return fmt.Errorf("currency is required: %w", apperrors.ErrValidation)
	}
	return nil
}

// TransactionFilter holds the combinable list predicates. All set fields are
// ANDed together. Counterparty is a case-insensitive substring match; Tags
// matches transactions carrying any of the given tags.
type TransactionFilter struct {
	StartDate    *time.Time
	EndDate      *time.Time
	MinAmount    *decimal.Decimal
	MaxAmount    *decimal.Decimal
	Kind         *TransactionKind
	Counterparty *string
	Category     *string
	Method       *PaymentMethod
	Failed       *bool
	Tags         []string
	Limit        int
	Offset       int
}

// IngestResult is returned to the boundary layer after a message produced a
// transaction. Confidence and Reason come from the classifier and exist for
// observability only.
type IngestResult struct {
	MessageID   string
	Transaction *Transaction
	Confidence  float64
	Reason      string
}
