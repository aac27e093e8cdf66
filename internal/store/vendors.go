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

// CreateVendor inserts a new vendor profile
func (s *Store) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	now := time.Now()
	vendor.CreatedAt = now
	vendor.UpdatedAt = now

	res, err := s.vendors.InsertOne(ctx, vendor)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateVendor
	}
	if err != nil {
		return err
	}
	vendor.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetVendor retrieves a vendor by ID
func (s *Store) GetVendor(ctx context.Context, id primitive.ObjectID) (*models.Vendor, error) {
	var vendor models.Vendor
	err := s.vendors.FindOne(ctx, bson.M{"_id": id}).Decode(&vendor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetVendorByUser retrieves the vendor profile owned by a user
func (s *Store) GetVendorByUser(ctx context.Context, userID primitive.ObjectID) (*models.Vendor, error) {
	var vendor models.Vendor
	err := s.vendors.FindOne(ctx, bson.M{"user": userID}).Decode(&vendor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// VendorFilter narrows vendor list queries
type VendorFilter struct {
	ApprovedOnly bool
	PendingOnly  bool
	Search       string
}

func (f VendorFilter) build() bson.M {
	filter := bson.M{}
	if f.ApprovedOnly {
		filter["isApproved"] = true
	} else if f.PendingOnly {
		filter["isApproved"] = false
	}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"storeName": bson.M{"$regex": f.Search, "$options": "i"}},
			bson.M{"storeDescription": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}
	return filter
}

// ListVendors returns a page of vendors and the total match count
func (s *Store) ListVendors(ctx context.Context, f VendorFilter, opts ListOptions) ([]models.Vendor, int64, error) {
	filter := f.build()

	cur, err := s.vendors.Find(ctx, filter, opts.findOptions())
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var vendors []models.Vendor
	if err := cur.All(ctx, &vendors); err != nil {
		return nil, 0, err
	}

	total, err := s.vendors.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return vendors, total, nil
}

// CountVendors counts vendors matching the filter
func (s *Store) CountVendors(ctx context.Context, filter bson.M) (int64, error) {
	return s.vendors.CountDocuments(ctx, filter)
}

// UpdateVendor applies the given field updates and returns the fresh document
func (s *Store) UpdateVendor(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Vendor, error) {
	set["updatedAt"] = time.Now()

	var vendor models.Vendor
	err := s.vendors.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&vendor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// ApplyVendorSale increments a vendor's running counters for one line item
func (s *Store) ApplyVendorSale(ctx context.Context, id primitive.ObjectID, saleTotal float64) error {
	_, err := s.vendors.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{"totalOrders": 1, "totalSales": saleTotal},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	return err
}

// ReverseVendorSale undoes ApplyVendorSale. Counters saturate at zero so a
// double cancellation can never drive them negative.
func (s *Store) ReverseVendorSale(ctx context.Context, id primitive.ObjectID, saleTotal float64) error {
	pipeline := bson.A{bson.M{"$set": bson.M{
		"totalOrders": bson.M{"$max": bson.A{0, bson.M{"$subtract": bson.A{"$totalOrders", 1}}}},
		"totalSales":  bson.M{"$max": bson.A{0.0, bson.M{"$subtract": bson.A{"$totalSales", saleTotal}}}},
		"updatedAt":   time.Now(),
	}}}
	_, err := s.vendors.UpdateByID(ctx, id, pipeline)
	return err
}

// SetVendorRating persists a recomputed rating aggregate
func (s *Store) SetVendorRating(ctx context.Context, id primitive.ObjectID, rating models.Rating) error {
	_, err := s.vendors.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"rating": rating, "updatedAt": time.Now()},
	})
	return err
}

// RecentVendors returns the most recently registered vendors
func (s *Store) RecentVendors(ctx context.Context, limit int64) ([]models.Vendor, error) {
	cur, err := s.vendors.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var vendors []models.Vendor
	if err := cur.All(ctx, &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}
