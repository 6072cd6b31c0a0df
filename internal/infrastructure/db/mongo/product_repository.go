package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estall/marketplace-api/internal/core/domain"
)

const (
	collectionProducts = "products" // seller-owned authoritative records
	collectionCatalog  = "catalog"  // denormalized browsable mirror
)

// ProductRepository persists both product representations. The same document
// shape is written to both collections; only deletion paths and the sold flag
// keep them consistent.
type ProductRepository struct {
	authoritative *mongo.Collection
	mirror        *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		authoritative: db.Collection(collectionProducts),
		mirror:        db.Collection(collectionCatalog),
	}
}

func (r *ProductRepository) InsertAuthoritative(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.authoritative.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) InsertMirror(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.mirror.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert mirror: %w", err)
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Product
	if err := r.authoritative.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) ListBySeller(ctx context.Context, sellerEmail string) ([]*domain.Product, error) {
	return r.list(ctx, r.authoritative, bson.M{"seller_email": sellerEmail})
}

// ListAdvertised reads the authoritative collection: the mirror's advertised
// flag drifts and is never queried.
func (r *ProductRepository) ListAdvertised(ctx context.Context) ([]*domain.Product, error) {
	return r.list(ctx, r.authoritative, bson.M{"advertised": true, "sold": false})
}

// ListByCategory reads the browsable mirror, excluding sold products.
func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	return r.list(ctx, r.mirror, bson.M{"category_id": categoryID, "sold": bson.M{"$ne": true}})
}

func (r *ProductRepository) list(ctx context.Context, col *mongo.Collection, filter bson.M) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	for cursor.Next(ctx) {
		var p domain.Product
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, &p)
	}
	return products, cursor.Err()
}

// SetAdvertised updates the authoritative record only and returns it.
func (r *ProductRepository) SetAdvertised(ctx context.Context, id string, advertised bool) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.authoritative.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"advertised": advertised}},
	)
	if err != nil {
		return nil, fmt.Errorf("advertise product: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProductNotFound
	}
	return r.FindByID(ctx, id)
}

// MarkSold sets sold=true and advertised=false on the authoritative record.
// Re-applying to an already-sold product matches and sets the same values.
func (r *ProductRepository) MarkSold(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.authoritative.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"sold": true, "advertised": false}},
	)
	if err != nil {
		return fmt.Errorf("mark sold: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteAuthoritative(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.authoritative.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DeleteMirror removes the browsable record. Deleting an absent mirror is a
// no-op, not an error.
func (r *ProductRepository) DeleteMirror(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.mirror.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete mirror: %w", err)
	}
	return nil
}

// EnsureIndexes creates the query indexes for both collections.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	authIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "seller_email", Value: 1}}},
		{Keys: bson.D{{Key: "advertised", Value: 1}, {Key: "sold", Value: 1}}},
	}
	if _, err := r.authoritative.Indexes().CreateMany(ctx, authIndexes); err != nil {
		return err
	}

	mirrorIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
	}
	_, err := r.mirror.Indexes().CreateMany(ctx, mirrorIndexes)
	return err
}
