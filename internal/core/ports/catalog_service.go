package ports

import (
	"context"

	"github.com/estall/marketplace-api/internal/core/domain"
)

// CreateProductInput carries all data needed to list a product for sale.
type CreateProductInput struct {
	SellerEmail string
	Name        string
	CategoryID  string
	Price       float64
	Location    string
	YearsOfUse  int
	Description string
	ImageURL    string
}

// CatalogService owns the dual representation of products: every create is
// mirrored into the browsable collection, deletes touch the authoritative
// record only (mirror removal is the explicit responsibility of the payment
// cascade and report resolution).
type CatalogService interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	ListBySeller(ctx context.Context, sellerEmail string) ([]*domain.Product, error)
	ListAdvertised(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error)
	ToggleAdvertise(ctx context.Context, productID string) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}
