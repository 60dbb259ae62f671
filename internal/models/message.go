package models

import "time"

// SourceMessage mirrors the source_messages table.
type SourceMessage struct {
	MessageID  string    `json:"messageID"`
	UserID     string    `json:"userID"`
	Sender     string    `json:"sender"`
	Body       string    `json:"body"`
	ObservedAt time.Time `json:"observedAt"`
	Consumed   bool      `json:"consumed"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
