package ports

import "context"

// ClassificationResult is the wire contract returned by the external
// natural-language classifier. Field names and vocabulary match the JSON the
// service is prompted to emit; mapping onto the internal closed enumerations
// happens in the normalizer, not here.
//
// Amount is a pointer so that a missing field can be told apart from zero.
type ClassificationResult struct {
	IsTransaction   bool     `json:"is_transaction"`
	TransactionType string   `json:"transaction_type"`
	Amount          *float64 `json:"amount"`
	Currency        string   `json:"currency"`
	Merchant        string   `json:"merchant"`
	TransactionDate string   `json:"transaction_date"`
	ReferenceNumber string   `json:"reference_number"`
	AccountNumber   string   `json:"account_number"`
	CardNumber      string   `json:"card_number"`
	PaymentMethod   string   `json:"payment_method"`
	Remarks         string   `json:"remarks"`
	IsFailed        bool     `json:"is_failed"`
	Confidence      float64  `json:"confidence"`
	Reason          string   `json:"reason"`
}

// TransactionClassifier wraps the external classification service. The
// pipeline depends on this interface only; nothing vendor-specific leaks into
// the core.
//
// Classify decides in one pass whether the text is transactional and, if so,
// extracts the fields. A nil result with a nil error means "no transaction
// found" (a normal outcome, including unparsable responses). Transport-level
// failures are reported as errors wrapping apperrors.ErrClassifierUnavailable.
//
// ClassifyBatch extracts every transaction found in a statement-file blob of
// the declared format. Entries lacking a required field are dropped before
// returning.
type TransactionClassifier interface {
	Classify(ctx context.Context, sender, body string) (*ClassificationResult, error)
	ClassifyBatch(ctx context.Context, content, format string) ([]ClassificationResult, error)
}
