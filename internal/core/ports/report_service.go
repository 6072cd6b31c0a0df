package ports

import (
	"context"

	"github.com/estall/marketplace-api/internal/core/domain"
)

// FileReportInput carries a buyer's complaint about a product.
type FileReportInput struct {
	ReporterEmail string
	ProductID     string
	Reason        string
}

// ReportService records and resolves reported products. Resolving deletes the
// report and the product's browsable mirror; the seller-owned record stays.
type ReportService interface {
	File(ctx context.Context, input FileReportInput) (*domain.Report, error)
	ListAll(ctx context.Context) ([]*domain.Report, error)
	Resolve(ctx context.Context, reportID, productID string) error
}
