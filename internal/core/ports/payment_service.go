package ports

import (
	"context"

	"github.com/estall/marketplace-api/internal/core/domain"
)

// SubmitPaymentInput is a completed payment as confirmed by the gateway.
type SubmitPaymentInput struct {
	BookingID     string
	ProductID     string
	TransactionID string
	Amount        float64
}

// PaymentResult is returned after the cascade runs. AlreadyProcessed is true
// when the transaction id had been recorded before; the remaining cascade
// steps are still re-executed so a partial cascade is driven to completion.
type PaymentResult struct {
	Payment          *domain.Payment
	AlreadyProcessed bool
}

// PaymentService records payments and finalizes sales across the booking
// ledger, both product representations, and the report registry.
type PaymentService interface {
	Submit(ctx context.Context, input SubmitPaymentInput) (*PaymentResult, error)
	// CreateIntent asks the gateway for a payment intent over the given
	// amount and returns its client secret.
	CreateIntent(ctx context.Context, amount float64) (string, error)
}
