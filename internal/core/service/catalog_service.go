package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/estall/marketplace-api/internal/api/metrics"
	"github.com/estall/marketplace-api/internal/core/domain"
	"github.com/estall/marketplace-api/internal/core/ports"
)

// CatalogService owns both product representations and is the only writer
// that mirrors new products into the browsable collection.
type CatalogService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewCatalogService(repo ports.ProductRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// CreateProduct inserts the seller-owned record, then mirrors it into the
// browsable collection. The store offers no cross-collection transaction:
// when the mirror insert fails after the authoritative insert committed, the
// error is surfaced and the browsable view is stale until retried.
func (s *CatalogService) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	product := &domain.Product{
		ID:          uuid.NewString(),
		SellerEmail: input.SellerEmail,
		Name:        input.Name,
		CategoryID:  input.CategoryID,
		Price:       input.Price,
		Location:    input.Location,
		YearsOfUse:  input.YearsOfUse,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		PostedAt:    time.Now().UTC(),
	}

	if err := s.repo.InsertAuthoritative(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("seller", input.SellerEmail).Msg("failed to create product")
		return nil, err
	}

	if err := s.repo.InsertMirror(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("mirror insert failed, browsable view is stale")
		return nil, fmt.Errorf("mirror product: %w", err)
	}

	metrics.ProductsCreatedTotal.WithLabelValues(product.CategoryID).Inc()
	s.logger.Info().Str("product_id", product.ID).Str("seller", input.SellerEmail).Msg("product created")

	return product, nil
}

func (s *CatalogService) ListBySeller(ctx context.Context, sellerEmail string) ([]*domain.Product, error) {
	return s.repo.ListBySeller(ctx, sellerEmail)
}

// ListAdvertised reads the authoritative collection, the only place the
// advertised flag is maintained.
func (s *CatalogService) ListAdvertised(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.ListAdvertised(ctx)
}

// ListByCategory reads the browsable mirror, excluding sold products.
func (s *CatalogService) ListByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	return s.repo.ListByCategory(ctx, categoryID)
}

// ToggleAdvertise sets advertised=true on the seller-owned record only. The
// mirror is not reconciled here; it is updated lazily by the payment cascade
// or deletion paths.
func (s *CatalogService) ToggleAdvertise(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.repo.SetAdvertised(ctx, productID, true)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("product_id", productID).Msg("product advertised")
	return product, nil
}

// DeleteProduct removes the seller-owned record only. Callers needing mirror
// removal do so explicitly.
func (s *CatalogService) DeleteProduct(ctx context.Context, productID string) error {
	return s.repo.DeleteAuthoritative(ctx, productID)
}
