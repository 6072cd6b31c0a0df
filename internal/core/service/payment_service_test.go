package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/estall/marketplace-api/internal/core/domain"
	"github.com/estall/marketplace-api/internal/core/ports"
)

type cascadeFixture struct {
	payments  *stubPaymentRepo
	bookings  *stubBookingRepo
	products  *stubProductRepo
	reports   *stubReportRepo
	dedup     *stubDedup
	intents   *stubIntents
	publisher *stubPublisher
	journal   []string
	svc       ports.PaymentService
}

// newCascadeFixture wires a payment service over stubs pre-seeded with one
// unpaid booking for an advertised product that has two open reports.
func newCascadeFixture() *cascadeFixture {
	f := &cascadeFixture{
		payments:  newStubPaymentRepo(),
		bookings:  newStubBookingRepo(),
		products:  newStubProductRepo(),
		reports:   newStubReportRepo(),
		dedup:     newStubDedup(),
		intents:   &stubIntents{secret: "cs_test_secret"},
		publisher: &stubPublisher{},
	}
	f.payments.journal = &f.journal
	f.bookings.journal = &f.journal
	f.products.journal = &f.journal
	f.reports.journal = &f.journal

	now := time.Now().UTC()
	f.bookings.byID["booking-1"] = &domain.Booking{
		ID:         "booking-1",
		BuyerEmail: "buyer@example.com",
		ProductID:  "product-1",
		Price:      150,
		CreatedAt:  now,
	}
	f.products.authoritative["product-1"] = &domain.Product{
		ID:          "product-1",
		SellerEmail: "seller@example.com",
		Name:        "Lamp",
		CategoryID:  "cat-1",
		Price:       150,
		Advertised:  true,
		PostedAt:    now,
	}
	f.products.mirror["product-1"] = &domain.Product{
		ID:         "product-1",
		Name:       "Lamp",
		CategoryID: "cat-1",
		Price:      150,
		Advertised: true,
		PostedAt:   now,
	}
	f.reports.byID["report-1"] = &domain.Report{ID: "report-1", ProductID: "product-1"}
	f.reports.byID["report-2"] = &domain.Report{ID: "report-2", ProductID: "product-1"}

	f.svc = NewPaymentService(
		f.payments, f.bookings, f.products, f.reports,
		f.dedup, f.intents, f.publisher, discardLogger,
	)
	return f
}

func submitInput() ports.SubmitPaymentInput {
	return ports.SubmitPaymentInput{
		BookingID:     "booking-1",
		ProductID:     "product-1",
		TransactionID: "tx-abc-123",
		Amount:        150,
	}
}

func TestPaymentService_Submit_FullCascade(t *testing.T) {
	f := newCascadeFixture()

	result, err := f.svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AlreadyProcessed {
		t.Error("first submission must not report AlreadyProcessed")
	}
	if result.Payment.TransactionID != "tx-abc-123" {
		t.Errorf("payment transaction id: got %q", result.Payment.TransactionID)
	}

	booking := f.bookings.byID["booking-1"]
	if !booking.Paid {
		t.Error("booking must be marked paid")
	}
	if booking.TransactionID != "tx-abc-123" {
		t.Errorf("booking transaction id: got %q", booking.TransactionID)
	}

	product := f.products.authoritative["product-1"]
	if !product.Sold {
		t.Error("authoritative product must be sold")
	}
	if product.Advertised {
		t.Error("sold product must not stay advertised")
	}

	if _, ok := f.products.mirror["product-1"]; ok {
		t.Error("browsable mirror must be deleted")
	}
	if len(f.reports.byID) != 0 {
		t.Errorf("reports must be purged, %d remain", len(f.reports.byID))
	}
}

func TestPaymentService_Submit_StepOrder(t *testing.T) {
	f := newCascadeFixture()

	if _, err := f.svc.Submit(context.Background(), submitInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"payment_insert", "mark_paid", "mark_sold", "unlist", "purge_reports"}
	if len(f.journal) != len(want) {
		t.Fatalf("expected %d steps, got %v", len(want), f.journal)
	}
	for i, step := range want {
		if f.journal[i] != step {
			t.Errorf("step %d: want %q, got %q", i, step, f.journal[i])
		}
	}
}

func TestPaymentService_Submit_ReplayIsIdempotent(t *testing.T) {
	f := newCascadeFixture()

	first, err := f.svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}

	second, err := f.svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("replay: %v", err)
	}

	if !second.AlreadyProcessed {
		t.Error("replay must report AlreadyProcessed")
	}
	if second.Payment.ID != first.Payment.ID {
		t.Errorf("replay must return the recorded payment: got %q, want %q", second.Payment.ID, first.Payment.ID)
	}
	if len(f.payments.byTx) != 1 {
		t.Errorf("expected exactly 1 payment record, got %d", len(f.payments.byTx))
	}
	if booking := f.bookings.byID["booking-1"]; !booking.Paid {
		t.Error("booking must remain paid after replay")
	}
}

func TestPaymentService_Submit_RetryCompletesPartialCascade(t *testing.T) {
	f := newCascadeFixture()
	f.products.markSoldErr = errors.New("products collection unavailable")

	_, err := f.svc.Submit(context.Background(), submitInput())
	if !errors.Is(err, domain.ErrCascadeIncomplete) {
		t.Fatalf("expected ErrCascadeIncomplete, got %v", err)
	}

	// The payment append is never rolled back.
	if len(f.payments.byTx) != 1 {
		t.Fatalf("payment record must survive a failed cascade, got %d records", len(f.payments.byTx))
	}
	if !f.bookings.byID["booking-1"].Paid {
		t.Error("steps before the failure must have applied")
	}
	if f.products.authoritative["product-1"].Sold {
		t.Error("product must not be sold yet")
	}

	// Retrying the same transaction id drives the cascade forward.
	f.products.markSoldErr = nil
	result, err := f.svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if !result.AlreadyProcessed {
		t.Error("retry must report AlreadyProcessed")
	}
	if !f.products.authoritative["product-1"].Sold {
		t.Error("retry must complete the sold transition")
	}
	if _, ok := f.products.mirror["product-1"]; ok {
		t.Error("retry must delete the mirror")
	}
	if len(f.reports.byID) != 0 {
		t.Error("retry must purge the reports")
	}
	if len(f.payments.byTx) != 1 {
		t.Errorf("retry must not append a second payment, got %d", len(f.payments.byTx))
	}
}

func TestPaymentService_Submit_DedupHitShortCircuits(t *testing.T) {
	f := newCascadeFixture()

	if _, err := f.svc.Submit(context.Background(), submitInput()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if !f.dedup.seen["tx-abc-123"] {
		t.Fatal("completed cascade must set the dedup key")
	}
	f.journal = f.journal[:0]

	result, err := f.svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !result.AlreadyProcessed {
		t.Error("dedup hit must report AlreadyProcessed")
	}
	if result.Payment == nil || result.Payment.TransactionID != "tx-abc-123" {
		t.Fatalf("dedup hit must return the recorded payment, got %+v", result.Payment)
	}
	// The key is only set after step 5, so a hit skips every store write.
	if len(f.journal) != 0 {
		t.Errorf("dedup hit must not re-run the cascade, got steps %v", f.journal)
	}
}

func TestPaymentService_Submit_StaleDedupKeyFallsBackToLog(t *testing.T) {
	f := newCascadeFixture()
	f.dedup.seen["tx-abc-123"] = true // no payment record behind it

	result, err := f.svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AlreadyProcessed {
		t.Error("without a recorded payment the submission is not a replay")
	}
	want := []string{"payment_insert", "mark_paid", "mark_sold", "unlist", "purge_reports"}
	if len(f.journal) != len(want) {
		t.Fatalf("stale key must not suppress the cascade, got steps %v", f.journal)
	}
	if len(f.payments.byTx) != 1 {
		t.Errorf("payment must be appended, got %d records", len(f.payments.byTx))
	}
}

func TestPaymentService_Submit_PartialCascadeNeverMarksDedup(t *testing.T) {
	f := newCascadeFixture()
	f.products.markSoldErr = errors.New("products collection unavailable")

	if _, err := f.svc.Submit(context.Background(), submitInput()); !errors.Is(err, domain.ErrCascadeIncomplete) {
		t.Fatalf("expected ErrCascadeIncomplete, got %v", err)
	}
	// A retry must take the slow path and finish the cascade, so the key may
	// only exist once every step has run.
	if f.dedup.seen["tx-abc-123"] {
		t.Error("failed cascade must not set the dedup key")
	}
}

func TestPaymentService_Submit_RejectsSecondTransactionForPaidBooking(t *testing.T) {
	f := newCascadeFixture()

	if _, err := f.svc.Submit(context.Background(), submitInput()); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	other := submitInput()
	other.TransactionID = "tx-other-456"
	_, err := f.svc.Submit(context.Background(), other)
	if !errors.Is(err, domain.ErrBookingAlreadyPaid) {
		t.Fatalf("expected ErrBookingAlreadyPaid, got %v", err)
	}
	if len(f.payments.byTx) != 1 {
		t.Errorf("no second payment may be appended, got %d records", len(f.payments.byTx))
	}
	if f.bookings.byID["booking-1"].TransactionID != "tx-abc-123" {
		t.Errorf("booking transaction id must not be overwritten, got %q", f.bookings.byID["booking-1"].TransactionID)
	}
}

func TestPaymentService_Submit_MarkPaidFailure(t *testing.T) {
	f := newCascadeFixture()
	f.bookings.markPaidErr = errors.New("bookings collection unavailable")

	_, err := f.svc.Submit(context.Background(), submitInput())
	if !errors.Is(err, domain.ErrCascadeIncomplete) {
		t.Fatalf("expected ErrCascadeIncomplete, got %v", err)
	}
	if len(f.payments.byTx) != 1 {
		t.Error("payment record must survive the failure")
	}
	if f.products.authoritative["product-1"].Sold {
		t.Error("later steps must not run after an earlier step fails")
	}
}

func TestPaymentService_Submit_LostInsertRace(t *testing.T) {
	f := newCascadeFixture()
	f.payments.dupOnInsert = true

	result, err := f.svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.AlreadyProcessed {
		t.Error("losing the insert race must be treated as a replay")
	}
	if result.Payment.ID != "payment-concurrent" {
		t.Errorf("must adopt the concurrent winner's record, got %q", result.Payment.ID)
	}
	if !f.bookings.byID["booking-1"].Paid {
		t.Error("cascade must still run after adopting the record")
	}
}

func TestPaymentService_Submit_DedupFailureIsNonFatal(t *testing.T) {
	f := newCascadeFixture()
	f.dedup.seenErr = errors.New("redis down")
	f.dedup.markErr = errors.New("redis down")

	result, err := f.svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("dedup outage must not block the cascade: %v", err)
	}
	if result.AlreadyProcessed {
		t.Error("fresh transaction must not be a replay")
	}
	if !f.products.authoritative["product-1"].Sold {
		t.Error("cascade must complete despite dedup outage")
	}
}

func TestPaymentService_Submit_PublishFailureIsNonFatal(t *testing.T) {
	f := newCascadeFixture()
	f.publisher.publishErr = errors.New("broker down")

	if _, err := f.svc.Submit(context.Background(), submitInput()); err != nil {
		t.Fatalf("publish outage must not fail the submission: %v", err)
	}
}

func TestPaymentService_Submit_PublishesCompletionEvent(t *testing.T) {
	f := newCascadeFixture()

	if _, err := f.svc.Submit(context.Background(), submitInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.publisher.topics) != 1 || f.publisher.topics[0] != "payment.completed" {
		t.Errorf("expected one payment.completed event, got %v", f.publisher.topics)
	}
}

func TestPaymentService_Submit_NilDedupAndPublisher(t *testing.T) {
	f := newCascadeFixture()
	svc := NewPaymentService(f.payments, f.bookings, f.products, f.reports, nil, f.intents, nil, discardLogger)

	if _, err := svc.Submit(context.Background(), submitInput()); err != nil {
		t.Fatalf("nil dedup/publisher must be tolerated: %v", err)
	}
}

func TestPaymentService_CreateIntent(t *testing.T) {
	f := newCascadeFixture()

	secret, err := f.svc.CreateIntent(context.Background(), 12.34)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "cs_test_secret" {
		t.Errorf("client secret: got %q", secret)
	}
	if f.intents.gotAmount != 1234 {
		t.Errorf("amount must be converted to cents: got %d", f.intents.gotAmount)
	}
	if f.intents.gotCurrency != "usd" {
		t.Errorf("currency: got %q", f.intents.gotCurrency)
	}
}

func TestPaymentService_CreateIntent_RejectsNonPositiveAmount(t *testing.T) {
	f := newCascadeFixture()

	if _, err := f.svc.CreateIntent(context.Background(), 0); err == nil {
		t.Error("zero amount must be rejected")
	}
	if _, err := f.svc.CreateIntent(context.Background(), -5); err == nil {
		t.Error("negative amount must be rejected")
	}
}

func TestPaymentService_CreateIntent_GatewayError(t *testing.T) {
	f := newCascadeFixture()
	f.intents.err = errors.New("gateway unreachable")

	if _, err := f.svc.CreateIntent(context.Background(), 10); err == nil {
		t.Error("gateway errors must propagate")
	}
}
