package payment

import (
	"context"

	"handshake/internal/models"
)

// Service drives the hosted payment-sheet flow for the agreed price.
type Service interface {
	CreateIntent(ctx context.Context, txID string, actor models.Actor) (*Intent, error)
	RecordSettlement(ctx context.Context, txID string, actor models.Actor, intentID string) (*models.Transaction, error)
}

// Provider is the payment backend: create an intent, hand back the
// client secret for the hosted confirmation UI.
type Provider interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency, reference string) (*Intent, error)
}

// TokenIssuer mints the handover token on settlement.
type TokenIssuer interface {
	Issue(ctx context.Context, txID string) (string, error)
}

// Intent is the provider's payment intent, as exposed to the client.
type Intent struct {
	ID           string `json:"paymentIntent"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}
