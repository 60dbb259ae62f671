package dto

import (
	"time"

	"github.com/anujbalmiki/pennywise/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IngestMessageRequest is the single-message ingestion payload. Field names
// follow the mobile client contract.
type IngestMessageRequest struct {
	Sender     string    `json:"sender" binding:"required"`
	Body       string    `json:"message_text" binding:"required"`
	ObservedAt time.Time `json:"timestamp" binding:"required"`
}

// ListMessagesParams defines query parameters for listing messages.
type ListMessagesParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// MessageResponse is the API shape of one source message.
type MessageResponse struct {
	MessageID  string    `json:"id"`
	Sender     string    `json:"sender"`
	Body       string    `json:"message_text"`
	ObservedAt time.Time `json:"timestamp"`
	Consumed   bool      `json:"consumed"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToMessageResponse converts a domain.SourceMessage to its API shape.
func ToMessageResponse(m *domain.SourceMessage) MessageResponse {
	return MessageResponse{
		MessageID:  m.MessageID,
		Sender:     m.Sender,
		Body:       m.Body,
		ObservedAt: m.ObservedAt,
		Consumed:   m.Consumed,
		CreatedAt:  m.CreatedAt,
	}
}

// ListMessagesResponse wraps the list of messages.
type ListMessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// IngestResultResponse reports a transaction derived from a message, with the
// classifier's confidence and justification for observability.
type IngestResultResponse struct {
	MessageID     string          `json:"message_id"`
	TransactionID string          `json:"transaction_id"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Counterparty  *string         `json:"counterparty,omitempty"`
	Confidence    float64         `json:"confidence"`
	Reason        string          `json:"reason"`
}

// ToIngestResultResponse converts a domain.IngestResult to its API shape.
func ToIngestResultResponse(r *domain.IngestResult) IngestResultResponse {
	return IngestResultResponse{
		MessageID:     r.MessageID,
		TransactionID: r.Transaction.TransactionID,
		Kind:          string(r.Transaction.Kind),
		Amount:        r.Transaction.Amount,
		Counterparty:  r.Transaction.Counterparty,
		Confidence:    r.Confidence,
		Reason:        r.Reason,
	}
}

// MessageStatisticsResponse summarises a user's message pipeline.
type MessageStatisticsResponse struct {
	TotalMessages    int64                 `json:"total_messages"`
	ConsumedMessages int64                 `json:"consumed_messages"`
	PendingMessages  int64                 `json:"pending_messages"`
	ConsumedRate     float64               `json:"consumed_rate"`
	TopSenders       []SenderCountResponse `json:"top_senders"`
}

// SenderCountResponse is one per-sender row of the statistics.
type SenderCountResponse struct {
	Sender string `json:"sender"`
	Count  int64  `json:"count"`
}

// ToMessageStatisticsResponse converts domain statistics to the API shape.
func ToMessageStatisticsResponse(s *domain.MessageStatistics) MessageStatisticsResponse {
	resp := MessageStatisticsResponse{
		TotalMessages:    s.TotalMessages,
		ConsumedMessages: s.ConsumedMessages,
		PendingMessages:  s.PendingMessages,
		TopSenders:       make([]SenderCountResponse, len(s.TopSenders)),
	}
	if s.TotalMessages > 0 {
		resp.ConsumedRate = float64(s.ConsumedMessages) / float64(s.TotalMessages) * 100
	}
	for i, sc := range s.TopSenders {
		resp.TopSenders[i] = SenderCountResponse{Sender: sc.Sender, Count: sc.Count}
	}
	return resp
}
