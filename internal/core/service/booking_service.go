package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/estall/marketplace-api/internal/api/metrics"
	"github.com/estall/marketplace-api/internal/core/domain"
	"github.com/estall/marketplace-api/internal/core/ports"
)

// BookingService owns reservation records keyed by buyer identity.
type BookingService struct {
	repo   ports.BookingRepository
	logger zerolog.Logger
}

func NewBookingService(repo ports.BookingRepository, logger zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, logger: logger}
}

func (s *BookingService) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	booking := &domain.Booking{
		ID:          uuid.NewString(),
		BuyerEmail:  input.BuyerEmail,
		ProductID:   input.ProductID,
		ProductName: input.ProductName,
		Price:       input.Price,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, booking); err != nil {
		s.logger.Error().Err(err).Str("buyer", input.BuyerEmail).Msg("failed to create booking")
		return nil, err
	}

	metrics.BookingsCreatedTotal.Inc()
	s.logger.Info().Str("booking_id", booking.ID).Str("buyer", input.BuyerEmail).Msg("booking created")

	return booking, nil
}

func (s *BookingService) ListForBuyer(ctx context.Context, buyerEmail string) ([]*domain.Booking, error) {
	return s.repo.ListByBuyer(ctx, buyerEmail)
}

// GetOwned fetches a booking and enforces ownership: an absent booking is
// ErrBookingNotFound, an existing booking owned by a different buyer is
// ErrForbidden. The two cases stay distinct per the ledger contract.
func (s *BookingService) GetOwned(ctx context.Context, id, buyerEmail string) (*domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.BuyerEmail != buyerEmail {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

// DeleteOwned removes a booking after the same ownership check as GetOwned.
func (s *BookingService) DeleteOwned(ctx context.Context, id, buyerEmail string) error {
	if _, err := s.GetOwned(ctx, id, buyerEmail); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
