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

// InsertOrder inserts a new order
func (s *Store) InsertOrder(ctx context.Context, order *models.Order) error {
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	res, err := s.orders.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetOrder retrieves an order by ID
func (s *Store) GetOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderForCustomer retrieves an order only if the customer owns it
func (s *Store) GetOrderForCustomer(ctx context.Context, id, customerID primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"_id": id, "customer": customerID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderForVendor retrieves an order only if the vendor fulfils a line item
func (s *Store) GetOrderForVendor(ctx context.Context, id, vendorID primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"_id": id, "items.vendor": vendorID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderFilter narrows order list queries
type OrderFilter struct {
	Customer *primitive.ObjectID
	Vendor   *primitive.ObjectID
	Status   string
	Search   string
}

func (f OrderFilter) build() bson.M {
	filter := bson.M{}
	if f.Customer != nil {
		filter["customer"] = *f.Customer
	}
	if f.Vendor != nil {
		filter["items.vendor"] = *f.Vendor
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		filter["orderNumber"] = bson.M{"$regex": f.Search, "$options": "i"}
	}
	return filter
}

// ListOrders returns a page of orders and the total match count
func (s *Store) ListOrders(ctx context.Context, f OrderFilter, opts ListOptions) ([]models.Order, int64, error) {
	filter := f.build()

	cur, err := s.orders.Find(ctx, filter, opts.findOptions())
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, 0, err
	}

	total, err := s.orders.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CountOrders counts orders matching the filter
func (s *Store) CountOrders(ctx context.Context, filter bson.M) (int64, error) {
	return s.orders.CountDocuments(ctx, filter)
}

// UpdateOrder applies the given field updates and returns the fresh document
func (s *Store) UpdateOrder(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Order, error) {
	set["updatedAt"] = time.Now()

	var order models.Order
	err := s.orders.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ReplaceOrderItems swaps the full line-item slice plus derived order fields
func (s *Store) ReplaceOrderItems(ctx context.Context, id primitive.ObjectID, items []models.OrderItem, set bson.M) (*models.Order, error) {
	set["items"] = items
	return s.UpdateOrder(ctx, id, set)
}

// HasDeliveredOrderWithProduct reports whether the given delivered order
// belongs to the customer and contains the product. Gate for verified reviews.
func (s *Store) HasDeliveredOrderWithProduct(ctx context.Context, orderID, customerID, productID primitive.ObjectID) (bool, error) {
	count, err := s.orders.CountDocuments(ctx, bson.M{
		"_id":           orderID,
		"customer":      customerID,
		"items.product": productID,
		"status":        models.OrderStatusDelivered,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecentOrders returns the most recently placed orders
func (s *Store) RecentOrders(ctx context.Context, filter bson.M, limit int64) ([]models.Order, error) {
	cur, err := s.orders.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
