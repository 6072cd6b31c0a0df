package service

import (
	"context"
	"errors"
	"testing"

	"github.com/estall/marketplace-api/internal/core/domain"
	"github.com/estall/marketplace-api/internal/core/ports"
)

func reportedProduct(products *stubProductRepo, id string) {
	products.authoritative[id] = &domain.Product{ID: id, SellerEmail: "seller@example.com"}
	products.mirror[id] = &domain.Product{ID: id}
}

func TestReportService_File(t *testing.T) {
	reports := newStubReportRepo()
	products := newStubProductRepo()
	svc := NewReportService(reports, products, discardLogger)

	report, err := svc.File(context.Background(), ports.FileReportInput{
		ReporterEmail: "buyer@example.com",
		ProductID:     "product-1",
		Reason:        "counterfeit",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.ID == "" {
		t.Error("report id must be assigned")
	}
	if report.CreatedAt.IsZero() {
		t.Error("created_at must be set")
	}
	if _, ok := reports.byID[report.ID]; !ok {
		t.Error("report not stored")
	}
}

func TestReportService_Resolve(t *testing.T) {
	reports := newStubReportRepo()
	products := newStubProductRepo()
	svc := NewReportService(reports, products, discardLogger)
	reportedProduct(products, "product-1")

	report, _ := svc.File(context.Background(), ports.FileReportInput{
		ReporterEmail: "buyer@example.com",
		ProductID:     "product-1",
		Reason:        "counterfeit",
	})

	if err := svc.Resolve(context.Background(), report.ID, "product-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := reports.byID[report.ID]; ok {
		t.Error("resolved report must be deleted")
	}
	if _, ok := products.mirror["product-1"]; ok {
		t.Error("browsable mirror must be removed")
	}
	if _, ok := products.authoritative["product-1"]; !ok {
		t.Error("seller-owned record must be retained")
	}
}

func TestReportService_Resolve_UnknownReport(t *testing.T) {
	reports := newStubReportRepo()
	products := newStubProductRepo()
	svc := NewReportService(reports, products, discardLogger)
	reportedProduct(products, "product-1")

	err := svc.Resolve(context.Background(), "missing", "product-1")
	if !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
	if _, ok := products.mirror["product-1"]; !ok {
		t.Error("mirror must be untouched when the report lookup fails")
	}
}

func TestReportService_Resolve_MirrorDeleteError(t *testing.T) {
	reports := newStubReportRepo()
	products := newStubProductRepo()
	products.deleteMirrorErr = errors.New("catalog collection unavailable")
	svc := NewReportService(reports, products, discardLogger)
	reportedProduct(products, "product-1")

	report, _ := svc.File(context.Background(), ports.FileReportInput{
		ReporterEmail: "buyer@example.com",
		ProductID:     "product-1",
		Reason:        "counterfeit",
	})

	if err := svc.Resolve(context.Background(), report.ID, "product-1"); err == nil {
		t.Error("mirror delete failure must be surfaced")
	}
}

func TestReportService_ListAll(t *testing.T) {
	reports := newStubReportRepo()
	products := newStubProductRepo()
	svc := NewReportService(reports, products, discardLogger)

	for _, pid := range []string{"p1", "p2"} {
		if _, err := svc.File(context.Background(), ports.FileReportInput{
			ReporterEmail: "buyer@example.com",
			ProductID:     pid,
			Reason:        "spam",
		}); err != nil {
			t.Fatalf("file: %v", err)
		}
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 reports, got %d", len(all))
	}
}
