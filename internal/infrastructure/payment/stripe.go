package payment

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeIntentClient creates payment intents against the Stripe API.
type StripeIntentClient struct {
	api *client.API
}

// NewStripeIntentClient wraps a Stripe API client for the given secret key.
func NewStripeIntentClient(secretKey string) *StripeIntentClient {
	return &StripeIntentClient{api: client.New(secretKey, nil)}
}

// CreateIntent creates a card payment intent for the amount (in the smallest
// currency unit) and returns its client secret.
func (c *StripeIntentClient) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
