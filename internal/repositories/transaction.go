package repositories

import (
	"context"

	"handshake/internal/models"
)

// TransactionRepository owns the negotiation record. Every state-changing
// write is conditional on the version the caller last read; a stale
// writer gets ErrStaleTransaction instead of silently overwriting the
// other party's update.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	FindByListingAndBuyer(ctx context.Context, listingID string, buyerID uint) (*models.Transaction, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Transaction, error)

	AppendMessage(ctx context.Context, txID string, msg *models.Message) error

	SetPrice(ctx context.Context, txID string, version uint, price int64) error
	SetMeetup(ctx context.Context, txID string, version uint, name, mapLink string) error
	SetMeetupTime(ctx context.Context, txID string, version uint, meetupTime string) error
	MarkPaid(ctx context.Context, txID string, version uint, intentID string) error
	SetOTPToken(ctx context.Context, txID string, version uint, token string) error
	ConfirmOTP(ctx context.Context, txID string, version uint) error
}
