package ports

import (
	"context"

	"github.com/estall/marketplace-api/internal/core/domain"
)

// BookingRepository persists reservations.
type BookingRepository interface {
	Insert(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByBuyer(ctx context.Context, buyerEmail string) ([]*domain.Booking, error)
	// MarkPaid sets paid=true and records the transaction id. Privileged:
	// only the payment cascade calls it. Idempotent for the same transaction.
	MarkPaid(ctx context.Context, id, transactionID string) error
	Delete(ctx context.Context, id string) error
}
