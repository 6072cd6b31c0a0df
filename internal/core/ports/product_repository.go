package ports

import (
	"context"

	"github.com/estall/marketplace-api/internal/core/domain"
)

// ProductRepository persists both product representations. "Authoritative"
// is the seller-owned collection; "mirror" is the denormalized browsable
// collection queried by public listings.
type ProductRepository interface {
	InsertAuthoritative(ctx context.Context, p *domain.Product) error
	InsertMirror(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	ListBySeller(ctx context.Context, sellerEmail string) ([]*domain.Product, error)
	// ListAdvertised reads the authoritative collection: the mirror's
	// advertised flag is not reconciled on toggle and cannot be trusted.
	ListAdvertised(ctx context.Context) ([]*domain.Product, error)
	// ListByCategory reads the mirror, excluding sold products.
	ListByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error)
	SetAdvertised(ctx context.Context, id string, advertised bool) (*domain.Product, error)
	// MarkSold sets sold=true and advertised=false on the authoritative
	// record. Idempotent: re-applying observes the same terminal state.
	MarkSold(ctx context.Context, id string) error
	DeleteAuthoritative(ctx context.Context, id string) error
	// DeleteMirror removes the browsable record. Absence is not an error.
	DeleteMirror(ctx context.Context, id string) error
}
