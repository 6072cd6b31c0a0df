package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/estall/marketplace-api/internal/api/metrics"
	"github.com/estall/marketplace-api/internal/core/domain"
	"github.com/estall/marketplace-api/internal/core/ports"
)

const intentCurrency = "usd"

// TxDedup abstracts the transaction idempotency fast path (Redis). The
// payment log's unique transaction_id index remains the authoritative guard.
type TxDedup interface {
	Seen(ctx context.Context, transactionID string) (bool, error)
	Mark(ctx context.Context, transactionID string) error
}

type paymentService struct {
	payments  ports.PaymentRepository
	bookings  ports.BookingRepository
	products  ports.ProductRepository
	reports   ports.ReportRepository
	dedup     TxDedup
	intents   ports.IntentClient
	publisher ports.EventPublisher
	log       zerolog.Logger
}

// NewPaymentService returns the PaymentService implementation. It is the one
// privileged writer that touches the payment log, the booking ledger, both
// product representations, and the report registry in a single logical
// operation.
func NewPaymentService(
	payments ports.PaymentRepository,
	bookings ports.BookingRepository,
	products ports.ProductRepository,
	reports ports.ReportRepository,
	dedup TxDedup,
	intents ports.IntentClient,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) ports.PaymentService {
	return &paymentService{
		payments:  payments,
		bookings:  bookings,
		products:  products,
		reports:   reports,
		dedup:     dedup,
		intents:   intents,
		publisher: publisher,
		log:       log,
	}
}

// Submit runs the sale-finalization cascade, strictly ordered:
//
//  1. Append the payment record (idempotent by transaction id, never rolled
//     back).
//  2. Mark the booking paid.
//  3. Mark the authoritative product sold and un-advertised.
//  4. Delete the browsable mirror record (absence is fine).
//  5. Purge any reports referencing the product (absence is fine).
//
// A Redis dedup hit short-circuits the whole cascade: the key is set only
// after step 5, so it proves a prior complete run. Without a hit, a known
// transaction id does not return early: steps 2 through 5 are idempotent and
// re-executed, so a cascade that previously failed partway is driven forward
// by resubmitting the same transaction id.
func (s *paymentService) Submit(ctx context.Context, in ports.SubmitPaymentInput) (*ports.PaymentResult, error) {
	// 0. Redis fast path. The dedup key is set only after step 5, so a hit
	// proves a prior complete cascade and the recorded payment can be returned
	// without re-running it. A failed cascade never sets the key, which keeps
	// forward retry on the slow path below.
	if s.dedup != nil {
		if seen, err := s.dedup.Seen(ctx, in.TransactionID); err != nil {
			s.log.Warn().Err(err).Str("transaction_id", in.TransactionID).Msg("dedup check failed, falling back to payment log")
		} else if seen {
			payment, err := s.payments.FindByTransactionID(ctx, in.TransactionID)
			if err != nil {
				return nil, fmt.Errorf("submit payment: %w", err)
			}
			if payment != nil {
				metrics.PaymentsProcessedTotal.WithLabelValues("replayed").Inc()
				s.log.Info().Str("transaction_id", in.TransactionID).Msg("transaction already finalized")
				return &ports.PaymentResult{Payment: payment, AlreadyProcessed: true}, nil
			}
			// Stale key with no recorded payment: the log stays authoritative.
		}
	}

	// 1. Append the payment record, or adopt the one already recorded.
	payment, err := s.payments.FindByTransactionID(ctx, in.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("submit payment: %w", err)
	}
	replay := payment != nil

	if !replay {
		// A booking finalized under one transaction id must not accept a
		// payment under another; idempotent replays carry the original id.
		booking, err := s.bookings.FindByID(ctx, in.BookingID)
		if err != nil {
			return nil, fmt.Errorf("submit payment: %w", err)
		}
		if booking.Paid && booking.TransactionID != in.TransactionID {
			return nil, fmt.Errorf("submit payment: %w", domain.ErrBookingAlreadyPaid)
		}

		payment = &domain.Payment{
			ID:            uuid.NewString(),
			BookingID:     in.BookingID,
			ProductID:     in.ProductID,
			TransactionID: in.TransactionID,
			Amount:        in.Amount,
			CreatedAt:     time.Now().UTC(),
		}
		if err := s.payments.Insert(ctx, payment); err != nil {
			if errors.Is(err, domain.ErrDuplicateTransaction) {
				// Lost the race against a concurrent submission of the same
				// transaction; continue as a replay of the recorded payment.
				replay = true
				if payment, err = s.payments.FindByTransactionID(ctx, in.TransactionID); err != nil || payment == nil {
					return nil, fmt.Errorf("submit payment: reload after duplicate: %w", err)
				}
			} else {
				return nil, fmt.Errorf("submit payment: %w", err)
			}
		}
	}

	// 2. Booking → paid.
	if err := s.bookings.MarkPaid(ctx, payment.BookingID, payment.TransactionID); err != nil {
		return nil, s.incomplete("mark_paid", payment.TransactionID, err)
	}

	// 3. Authoritative product → sold, un-advertised.
	if err := s.products.MarkSold(ctx, payment.ProductID); err != nil {
		return nil, s.incomplete("mark_sold", payment.TransactionID, err)
	}

	// 4. Drop the browsable mirror so no buyer-facing listing shows it.
	if err := s.products.DeleteMirror(ctx, payment.ProductID); err != nil {
		return nil, s.incomplete("unlist", payment.TransactionID, err)
	}

	// 5. A sold product leaves the moderation queue.
	if err := s.reports.DeleteByProduct(ctx, payment.ProductID); err != nil {
		return nil, s.incomplete("purge_reports", payment.TransactionID, err)
	}

	if s.dedup != nil {
		if err := s.dedup.Mark(ctx, payment.TransactionID); err != nil {
			s.log.Warn().Err(err).Str("transaction_id", payment.TransactionID).Msg("failed to set dedup key")
		}
	}

	if s.publisher != nil {
		event := map[string]any{
			"transaction_id": payment.TransactionID,
			"booking_id":     payment.BookingID,
			"product_id":     payment.ProductID,
			"amount":         payment.Amount,
		}
		if err := s.publisher.PublishJSON(ctx, "payment.completed", event); err != nil {
			s.log.Warn().Err(err).Str("transaction_id", payment.TransactionID).Msg("failed to publish payment event")
		}
	}

	result := "completed"
	if replay {
		result = "replayed"
	}
	metrics.PaymentsProcessedTotal.WithLabelValues(result).Inc()

	s.log.Info().
		Str("transaction_id", payment.TransactionID).
		Str("booking_id", payment.BookingID).
		Str("product_id", payment.ProductID).
		Bool("replay", replay).
		Msg("sale finalized")

	return &ports.PaymentResult{Payment: payment, AlreadyProcessed: replay}, nil
}

// incomplete wraps a step failure after the payment record committed. The
// caller must be able to tell this apart from "payment not received".
func (s *paymentService) incomplete(step, transactionID string, err error) error {
	metrics.CascadeStepFailuresTotal.WithLabelValues(step).Inc()
	s.log.Error().Err(err).
		Str("transaction_id", transactionID).
		Str("step", step).
		Msg("cascade step failed after payment was recorded")
	return fmt.Errorf("submit payment: %w (step %s: %v)", domain.ErrCascadeIncomplete, step, err)
}

// CreateIntent asks the gateway for a payment intent over the given amount.
func (s *paymentService) CreateIntent(ctx context.Context, amount float64) (string, error) {
	cents := int64(math.Round(amount * 100))
	if cents <= 0 {
		return "", fmt.Errorf("create intent: amount must be positive")
	}
	secret, err := s.intents.CreateIntent(ctx, cents, intentCurrency)
	if err != nil {
		return "", fmt.Errorf("create intent: %w", err)
	}
	return secret, nil
}
