package ports

import (
	"context"

	"github.com/estall/marketplace-api/internal/core/domain"
)

// PaymentRepository is the append-only payment log.
type PaymentRepository interface {
	Insert(ctx context.Context, p *domain.Payment) error
	// FindByTransactionID returns (nil, nil) when no payment with the given
	// transaction id exists.
	FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error)
}
