package domain

import "time"

// SourceMessage is a raw inbound notification text (typically a bank SMS)
// before classification. The body is immutable once created; only the
// Consumed flag transitions, false to true, when a transaction has been
// derived from the message.
type SourceMessage struct {
	MessageID  string    `json:"messageID"` // Primary Key (UUID)
	UserID     string    `json:"userID"`    // Owner; partition key for all queries
	Sender     string    `json:"sender"`    // Origin identifier, e.g. "HDFCBK"
	Body       string    `json:"body"`
	ObservedAt time.Time `json:"observedAt"` // Caller-supplied receipt timestamp
	Consumed   bool      `json:"consumed"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// MessageStatistics summarises a user's ingested messages.
type MessageStatistics struct {
	TotalMessages    int64         `json:"totalMessages"`
	ConsumedMessages int64         `json:"consumedMessages"`
	PendingMessages  int64         `json:"pendingMessages"`
	TopSenders       []SenderCount `json:"topSenders"`
}

// SenderCount is one row of the per-sender message breakdown.
type SenderCount struct {
	Sender string `json:"sender"`
	Count  int64  `json:"count"`
}
