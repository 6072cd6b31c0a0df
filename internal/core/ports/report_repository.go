package ports

import (
	"context"

	"github.com/estall/marketplace-api/internal/core/domain"
)

// ReportRepository persists product reports.
type ReportRepository interface {
	Insert(ctx context.Context, r *domain.Report) error
	ListAll(ctx context.Context) ([]*domain.Report, error)
	Delete(ctx context.Context, id string) error
	// DeleteByProduct removes every report referencing the product. Absence
	// is not an error.
	DeleteByProduct(ctx context.Context, productID string) error
}
