package store

import (
	"context"
	"errors"
	"time"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateProduct inserts a new product
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := s.products.InsertOne(ctx, product)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSKU
	}
	if err != nil {
		return err
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetProduct retrieves a product by ID
func (s *Store) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetVendorProduct retrieves a product only if the vendor owns it
func (s *Store) GetVendorProduct(ctx context.Context, id, vendorID primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id, "vendor": vendorID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductFilter narrows product list queries
type ProductFilter struct {
	ActiveOnly bool
	Category   string
	Vendor     *primitive.ObjectID
	MinPrice   *float64
	MaxPrice   *float64
	Search     string
}

func (f ProductFilter) build() bson.M {
	filter := bson.M{}
	if f.ActiveOnly {
		filter["isActive"] = true
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Vendor != nil {
		filter["vendor"] = *f.Vendor
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		filter["price"] = price
	}
	if f.Search != "" {
		filter["$text"] = bson.M{"$search": f.Search}
	}
	return filter
}

// ListProducts returns a page of products and the total match count
func (s *Store) ListProducts(ctx context.Context, f ProductFilter, opts ListOptions) ([]models.Product, int64, error) {
	filter := f.build()

	cur, err := s.products.Find(ctx, filter, opts.findOptions())
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	total, err := s.products.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// CountProducts counts products matching the filter
func (s *Store) CountProducts(ctx context.Context, filter bson.M) (int64, error) {
	return s.products.CountDocuments(ctx, filter)
}

// UpdateProduct applies the given field updates and returns the fresh document
func (s *Store) UpdateProduct(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error) {
	set["updatedAt"] = time.Now()

	var product models.Product
	err := s.products.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateSKU
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product permanently
func (s *Store) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustInventory shifts a product's tracked quantity and unit sales counter.
// Called with negative quantity deltas at order creation and positive ones on
// cancellation, inside the order transaction.
func (s *Store) AdjustInventory(ctx context.Context, id primitive.ObjectID, quantityDelta, salesDelta int) error {
	_, err := s.products.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{
			"inventory.quantity": quantityDelta,
			"totalSales":         salesDelta,
		},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	return err
}

// SetProductRating persists a recomputed rating aggregate
func (s *Store) SetProductRating(ctx context.Context, id primitive.ObjectID, rating models.Rating) error {
	_, err := s.products.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"rating": rating, "updatedAt": time.Now()},
	})
	return err
}

// DistinctCategories lists the categories currently in use
func (s *Store) DistinctCategories(ctx context.Context) ([]string, error) {
	raw, err := s.products.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(raw))
	for _, v := range raw {
		if c, ok := v.(string); ok {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

// LowStockProducts finds a vendor's active tracked products at or below their
// low stock threshold. Field-to-field comparison needs an aggregation stage.
func (s *Store) LowStockProducts(ctx context.Context, vendorID primitive.ObjectID, limit int64) ([]models.Product, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"vendor":                  vendorID,
			"isActive":                true,
			"inventory.trackQuantity": true,
		}}},
		{{Key: "$match", Value: bson.M{
			"$expr": bson.M{"$lte": bson.A{"$inventory.quantity", "$inventory.lowStockThreshold"}},
		}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := s.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
