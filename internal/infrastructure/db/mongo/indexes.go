package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every collection index the repositories rely on.
// Called once at startup, before the HTTP server accepts traffic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := NewProductRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("product indexes: %w", err)
	}
	if err := NewBookingRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("booking indexes: %w", err)
	}
	if err := NewPaymentRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("payment indexes: %w", err)
	}
	if err := NewReportRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("report indexes: %w", err)
	}
	return nil
}
