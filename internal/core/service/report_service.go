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

// ReportService records and resolves disputed products.
type ReportService struct {
	reports  ports.ReportRepository
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewReportService(reports ports.ReportRepository, products ports.ProductRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{reports: reports, products: products, logger: logger}
}

func (s *ReportService) File(ctx context.Context, input ports.FileReportInput) (*domain.Report, error) {
	report := &domain.Report{
		ID:            uuid.NewString(),
		ProductID:     input.ProductID,
		ReporterEmail: input.ReporterEmail,
		Reason:        input.Reason,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.reports.Insert(ctx, report); err != nil {
		s.logger.Error().Err(err).Str("product_id", input.ProductID).Msg("failed to file report")
		return nil, err
	}

	metrics.ReportsFiledTotal.Inc()
	s.logger.Info().Str("report_id", report.ID).Str("product_id", input.ProductID).Msg("report filed")

	return report, nil
}

func (s *ReportService) ListAll(ctx context.Context) ([]*domain.Report, error) {
	return s.reports.ListAll(ctx)
}

// Resolve deletes the report, then removes the product's browsable mirror.
// The seller-owned record is left untouched: a resolved product is off sale
// but the seller's history survives.
func (s *ReportService) Resolve(ctx context.Context, reportID, productID string) error {
	if err := s.reports.Delete(ctx, reportID); err != nil {
		return err
	}

	if err := s.products.DeleteMirror(ctx, productID); err != nil {
		return fmt.Errorf("resolve report: unlist product: %w", err)
	}

	metrics.ReportsResolvedTotal.Inc()
	s.logger.Info().Str("report_id", reportID).Str("product_id", productID).Msg("report resolved, product unlisted")

	return nil
}
