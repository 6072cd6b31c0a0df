package ports

import (
	"context"

	"github.com/estall/marketplace-api/internal/core/domain"
)

// CreateBookingInput carries a buyer's reservation request.
type CreateBookingInput struct {
	BuyerEmail  string
	ProductID   string
	ProductName string
	Price       float64
}

// BookingService owns reservation records. Every read or delete of a single
// booking is ownership-checked against the requesting buyer.
type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	ListForBuyer(ctx context.Context, buyerEmail string) ([]*domain.Booking, error)
	// GetOwned returns ErrBookingNotFound when the booking does not exist and
	// ErrForbidden when it exists but belongs to a different buyer.
	GetOwned(ctx context.Context, id, buyerEmail string) (*domain.Booking, error)
	DeleteOwned(ctx context.Context, id, buyerEmail string) error
}
