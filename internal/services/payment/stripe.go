package payment

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/paymentintent"
)

type stripeProvider struct{}

// NewStripeProvider configures the Stripe client with the given secret
// key and returns it as a Provider.
func NewStripeProvider(apiKey string) Provider {
	stripe.Key = apiKey
	return &stripeProvider{}
}

func (p *stripeProvider) CreateIntent(ctx context.Context, amountMinor int64, currency, reference string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.AddMetadata("transaction_id", reference)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       amountMinor,
		Currency:     currency,
	}, nil
}
