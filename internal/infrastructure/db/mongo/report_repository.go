package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estall/marketplace-api/internal/core/domain"
)

const collectionReports = "reports"

type ReportRepository struct {
	col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{col: db.Collection(collectionReports)}
}

func (r *ReportRepository) Insert(ctx context.Context, report *domain.Report) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *ReportRepository) ListAll(ctx context.Context) ([]*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []*domain.Report
	for cursor.Next(ctx) {
		var report domain.Report
		if err := cursor.Decode(&report); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		reports = append(reports, &report)
	}
	return reports, cursor.Err()
}

func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

// DeleteByProduct removes every report referencing the product. Zero matches
// is a no-op.
func (r *ReportRepository) DeleteByProduct(ctx context.Context, productID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"product_id": productID}); err != nil {
		return fmt.Errorf("delete reports by product: %w", err)
	}
	return nil
}

// EnsureIndexes creates the product lookup index.
func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "product_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
