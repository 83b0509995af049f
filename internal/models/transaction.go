package models

import (
	"time"
)

// Payment statuses
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// Transaction is the single record both parties negotiate over: one per
// (listing, buyer) pair. All progress fields live here so that phase can
// be derived from the record alone and the database stays the sole
// arbiter between the two concurrently acting clients.
type Transaction struct {
	ID        string `gorm:"primaryKey;size:36"`
	ListingID string `gorm:"size:36;not null;uniqueIndex:idx_listing_buyer"`
	BuyerID   uint   `gorm:"not null;uniqueIndex:idx_listing_buyer"`
	SellerID  uint   `gorm:"not null;index"`

	// Meetup sub-record. Price is nil until the seller accepts one.
	MeetupPrice   *int64 // whole euros
	MeetupAgreed  bool   `gorm:"not null;default:false"`
	MeetupName    string
	MeetupMapLink string
	MeetupTime    string

	PaymentStatus   string `gorm:"not null;default:'pending'"`
	PaymentIntentID string

	// OTP sub-record. Token is issued exactly once, on settlement.
	OTPToken     string
	OTPConfirmed bool `gorm:"not null;default:false"`

	// Version guards every state-changing write: updates are conditional
	// on the version the writer last read, so a stale writer loses.
	Version uint `gorm:"not null;default:1"`

	Messages []Message `gorm:"foreignKey:TransactionID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleOf derives the actor role of a user on this transaction.
func (t *Transaction) RoleOf(userID uint) Role {
	switch userID {
	case t.BuyerID:
		return RoleBuyer
	case t.SellerID:
		return RoleSeller
	default:
		return RoleNone
	}
}

// Terminal reports whether the handover has been confirmed and the
// transaction can no longer change.
func (t *Transaction) Terminal() bool {
	return t.OTPConfirmed
}
