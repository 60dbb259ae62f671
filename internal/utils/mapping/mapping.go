// Package mapping converts between domain types and database row models.
package mapping

import (
	"github.com/anujbalmiki/pennywise/internal/core/domain"
	"github.com/anujbalmiki/pennywise/internal/models"
)

// ToModelMessage converts a domain message to its row model.
func ToModelMessage(m domain.SourceMessage) models.SourceMessage {
	return models.SourceMessage(m)
}

// ToDomainMessage converts a row model to its domain message.
func ToDomainMessage(m models.SourceMessage) domain.SourceMessage {
	return domain.SourceMessage(m)
}

// ToModelTransaction converts a domain transaction to its row model.
func ToModelTransaction(t domain.Transaction) models.Transaction {
	var method *string
	if t.Method != nil {
		m := string(*t.Method)
		method = &m
	}
	return models.Transaction{
		TransactionID:   t.TransactionID,
		UserID:          t.UserID,
		SourceMessageID: t.SourceMessageID,
		Kind:            string(t.Kind),
		Amount:          t.Amount,
		Currency:        t.Currency,
		Counterparty:    t.Counterparty,
		Category:        t.Category,
		OccurredAt:      t.OccurredAt,
		Reference:       t.Reference,
		AccountRef:      t.AccountRef,
		InstrumentRef:   t.InstrumentRef,
		Method:          method,
		Notes:           t.Notes,
		Tags:            t.Tags,
		Failed:          t.Failed,
		Recurring:       t.Recurring,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// ToDomainTransaction converts a row model to its domain transaction.
func ToDomainTransaction(t models.Transaction) domain.Transaction {
	var method *domain.PaymentMethod
	if t.Method != nil {
		m := domain.PaymentMethod(*t.Method)
		method = &m
	}
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.Transaction{
		TransactionID:   t.TransactionID,
		UserID:          t.UserID,
		SourceMessageID: t.SourceMessageID,
		Kind:            domain.TransactionKind(t.Kind),
		Amount:          t.Amount,
		Currency:        t.Currency,
		Counterparty:    t.Counterparty,
		Category:        t.Category,
		OccurredAt:      t.OccurredAt,
		Reference:       t.Reference,
		AccountRef:      t.AccountRef,
		InstrumentRef:   t.InstrumentRef,
		Method:          method,
		Notes:           t.Notes,
		Tags:            tags,
		Failed:          t.Failed,
		Recurring:       t.Recurring,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
