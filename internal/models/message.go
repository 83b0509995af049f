package models

import "time"

// Message is one chat entry in a transaction's log. Immutable once
// appended. The ID is a ULID minted at append time, so lexicographic ID
// order is append order even when two clients' clocks disagree.
type Message struct {
	ID            string    `gorm:"primaryKey;size:26" json:"id"`
	TransactionID string    `gorm:"size:36;not null;index" json:"-"`
	SenderID      uint      `gorm:"not null" json:"sender"`
	Text          string    `gorm:"type:text;not null" json:"text"`
	CreatedAt     time.Time `json:"timestamp"`
}
