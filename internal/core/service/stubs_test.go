package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/estall/marketplace-api/internal/core/domain"
)

// In-memory stubs shared by the service tests. Each mirrors the filter and
// error semantics of the real Mongo repository it stands in for.

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byEmail   map[string]*domain.User
	creates   int
	finds     int
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return nil, domain.ErrUserExists
	}
	clone := *u
	clone.ID = fmt.Sprintf("user-%d", len(r.byEmail)+1)
	r.byEmail[u.Email] = &clone
	r.creates++
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.finds++
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	var users []*domain.User
	for _, u := range r.byEmail {
		if u.Role == role {
			clone := *u
			users = append(users, &clone)
		}
	}
	return users, nil
}

func (r *stubUserRepo) SetVerified(_ context.Context, id string, verified bool) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.Verified = verified
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	for email, u := range r.byEmail {
		if u.ID == id {
			delete(r.byEmail, email)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	authoritative map[string]*domain.Product
	mirror        map[string]*domain.Product

	mirrorInsertErr error
	markSoldErr     error
	deleteMirrorErr error

	journal *[]string
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		authoritative: make(map[string]*domain.Product),
		mirror:        make(map[string]*domain.Product),
	}
}

func (r *stubProductRepo) record(step string) {
	if r.journal != nil {
		*r.journal = append(*r.journal, step)
	}
}

func (r *stubProductRepo) InsertAuthoritative(_ context.Context, p *domain.Product) error {
	clone := *p
	r.authoritative[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) InsertMirror(_ context.Context, p *domain.Product) error {
	if r.mirrorInsertErr != nil {
		return r.mirrorInsertErr
	}
	clone := *p
	r.mirror[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.authoritative[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) ListBySeller(_ context.Context, sellerEmail string) ([]*domain.Product, error) {
	var products []*domain.Product
	for _, p := range r.authoritative {
		if p.SellerEmail == sellerEmail {
			clone := *p
			products = append(products, &clone)
		}
	}
	return products, nil
}

func (r *stubProductRepo) ListAdvertised(_ context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	for _, p := range r.authoritative {
		if p.Advertised && !p.Sold {
			clone := *p
			products = append(products, &clone)
		}
	}
	return products, nil
}

func (r *stubProductRepo) ListByCategory(_ context.Context, categoryID string) ([]*domain.Product, error) {
	var products []*domain.Product
	for _, p := range r.mirror {
		if p.CategoryID == categoryID && !p.Sold {
			clone := *p
			products = append(products, &clone)
		}
	}
	return products, nil
}

func (r *stubProductRepo) SetAdvertised(_ context.Context, id string, advertised bool) (*domain.Product, error) {
	p, ok := r.authoritative[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	p.Advertised = advertised
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) MarkSold(_ context.Context, id string) error {
	if r.markSoldErr != nil {
		return r.markSoldErr
	}
	p, ok := r.authoritative[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Sold = true
	p.Advertised = false
	r.record("mark_sold")
	return nil
}

func (r *stubProductRepo) DeleteAuthoritative(_ context.Context, id string) error {
	if _, ok := r.authoritative[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.authoritative, id)
	return nil
}

func (r *stubProductRepo) DeleteMirror(_ context.Context, id string) error {
	if r.deleteMirrorErr != nil {
		return r.deleteMirrorErr
	}
	delete(r.mirror, id) // absence is fine
	r.record("unlist")
	return nil
}

// ---------------------------------------------------------------------------
// Bookings
// ---------------------------------------------------------------------------

type stubBookingRepo struct {
	byID map[string]*domain.Booking

	markPaidErr error
	journal     *[]string
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{byID: make(map[string]*domain.Booking)}
}

func (r *stubBookingRepo) Insert(_ context.Context, b *domain.Booking) error {
	clone := *b
	r.byID[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) ListByBuyer(_ context.Context, buyerEmail string) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	for _, b := range r.byID {
		if b.BuyerEmail == buyerEmail {
			clone := *b
			bookings = append(bookings, &clone)
		}
	}
	return bookings, nil
}

func (r *stubBookingRepo) MarkPaid(_ context.Context, id, transactionID string) error {
	if r.markPaidErr != nil {
		return r.markPaidErr
	}
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Paid = true
	b.TransactionID = transactionID
	if r.journal != nil {
		*r.journal = append(*r.journal, "mark_paid")
	}
	return nil
}

func (r *stubBookingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrBookingNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Payments
// ---------------------------------------------------------------------------

type stubPaymentRepo struct {
	byTx map[string]*domain.Payment

	// dupOnInsert simulates losing the unique-index race: Insert stores the
	// concurrent winner's record and reports a duplicate.
	dupOnInsert bool
	insertErr   error
	journal     *[]string
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{byTx: make(map[string]*domain.Payment)}
}

func (r *stubPaymentRepo) Insert(_ context.Context, p *domain.Payment) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	if r.dupOnInsert {
		winner := *p
		winner.ID = "payment-concurrent"
		r.byTx[p.TransactionID] = &winner
		return domain.ErrDuplicateTransaction
	}
	if _, ok := r.byTx[p.TransactionID]; ok {
		return domain.ErrDuplicateTransaction
	}
	clone := *p
	r.byTx[p.TransactionID] = &clone
	if r.journal != nil {
		*r.journal = append(*r.journal, "payment_insert")
	}
	return nil
}

func (r *stubPaymentRepo) FindByTransactionID(_ context.Context, transactionID string) (*domain.Payment, error) {
	p, ok := r.byTx[transactionID]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

// ---------------------------------------------------------------------------
// Reports
// ---------------------------------------------------------------------------

type stubReportRepo struct {
	byID map[string]*domain.Report

	purgeErr error
	journal  *[]string
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{byID: make(map[string]*domain.Report)}
}

func (r *stubReportRepo) Insert(_ context.Context, rep *domain.Report) error {
	clone := *rep
	r.byID[rep.ID] = &clone
	return nil
}

func (r *stubReportRepo) ListAll(_ context.Context) ([]*domain.Report, error) {
	var reports []*domain.Report
	for _, rep := range r.byID {
		clone := *rep
		reports = append(reports, &clone)
	}
	return reports, nil
}

func (r *stubReportRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrReportNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubReportRepo) DeleteByProduct(_ context.Context, productID string) error {
	if r.purgeErr != nil {
		return r.purgeErr
	}
	for id, rep := range r.byID {
		if rep.ProductID == productID {
			delete(r.byID, id)
		}
	}
	if r.journal != nil {
		*r.journal = append(*r.journal, "purge_reports")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Dedup, publisher, intent gateway
// ---------------------------------------------------------------------------

type stubDedup struct {
	seen    map[string]bool
	seenErr error
	markErr error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) Seen(_ context.Context, transactionID string) (bool, error) {
	if d.seenErr != nil {
		return false, d.seenErr
	}
	return d.seen[transactionID], nil
}

func (d *stubDedup) Mark(_ context.Context, transactionID string) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.seen[transactionID] = true
	return nil
}

type stubPublisher struct {
	topics     []string
	publishErr error
}

func (p *stubPublisher) PublishJSON(_ context.Context, topic string, _ any) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.topics = append(p.topics, topic)
	return nil
}

type stubIntents struct {
	gotAmount   int64
	gotCurrency string
	secret      string
	err         error
}

func (i *stubIntents) CreateIntent(_ context.Context, amountCents int64, currency string) (string, error) {
	if i.err != nil {
		return "", i.err
	}
	i.gotAmount = amountCents
	i.gotCurrency = currency
	return i.secret, nil
}
