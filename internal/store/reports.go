package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Read-only aggregations behind the admin and vendor dashboards. Empty result
// sets decode to zeros and empty slices, never errors.

// PaidOrderMatch is the base filter for revenue queries: paid and not cancelled.
func PaidOrderMatch() bson.M {
	return bson.M{
		"paymentStatus": "paid",
		"status":        bson.M{"$ne": "cancelled"},
	}
}

// RevenueTotal sums grandTotal over orders matching the filter
func (s *Store) RevenueTotal(ctx context.Context, match bson.M) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": nil, "revenue": bson.M{"$sum": "$grandTotal"}}}},
	}

	cur, err := s.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var results []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Revenue, nil
}

// RevenuePoint is one day of revenue data
type RevenuePoint struct {
	Date    string  `bson:"_id" json:"date"`
	Revenue float64 `bson:"revenue" json:"revenue"`
	Orders  int     `bson:"orders" json:"orders"`
}

// RevenueByDay groups paid order revenue per calendar day since the cutoff
func (s *Store) RevenueByDay(ctx context.Context, since time.Time) ([]RevenuePoint, error) {
	match := PaidOrderMatch()
	match["createdAt"] = bson.M{"$gte": since}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
			"revenue": bson.M{"$sum": "$grandTotal"},
			"orders":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := s.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	points := []RevenuePoint{}
	if err := cur.All(ctx, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// UserGrowthPoint is one day of sign-ups for one role
type UserGrowthPoint struct {
	Key struct {
		Date string `bson:"date" json:"date"`
		Role string `bson:"role" json:"role"`
	} `bson:"_id" json:"key"`
	Count int `bson:"count" json:"count"`
}

// UserGrowthByDay groups user registrations per day and role since the cutoff
func (s *Store) UserGrowthByDay(ctx context.Context, since time.Time) ([]UserGrowthPoint, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"date": bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
				"role": "$role",
			},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id.date": 1}}},
	}

	cur, err := s.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	points := []UserGrowthPoint{}
	if err := cur.All(ctx, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// VendorRevenueRow is one vendor in a top-vendors report
type VendorRevenueRow struct {
	VendorID     primitive.ObjectID `bson:"_id" json:"vendorId"`
	StoreName    string             `bson:"storeName" json:"storeName"`
	TotalRevenue float64            `bson:"totalRevenue" json:"totalRevenue"`
	TotalOrders  int                `bson:"totalOrders" json:"totalOrders"`
}

// TopVendorsByRevenue ranks vendors by paid line-item revenue since the cutoff
func (s *Store) TopVendorsByRevenue(ctx context.Context, since time.Time, limit int64) ([]VendorRevenueRow, error) {
	match := PaidOrderMatch()
	match["createdAt"] = bson.M{"$gte": since}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$items.vendor",
			"totalRevenue": bson.M{"$sum": "$items.total"},
			"totalOrders":  bson.M{"$sum": 1},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "vendors",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "vendor",
		}}},
		{{Key: "$unwind", Value: "$vendor"}},
		{{Key: "$project", Value: bson.M{
			"storeName":    "$vendor.storeName",
			"totalRevenue": 1,
			"totalOrders":  1,
		}}},
		{{Key: "$sort", Value: bson.M{"totalRevenue": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := s.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []VendorRevenueRow{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ProductSalesRow is one product in a top-products report
type ProductSalesRow struct {
	ProductID     primitive.ObjectID `bson:"_id" json:"productId"`
	ProductName   string             `bson:"productName" json:"productName"`
	ProductImage  string             `bson:"productImage,omitempty" json:"productImage,omitempty"`
	TotalQuantity int                `bson:"totalQuantity" json:"totalQuantity"`
	TotalRevenue  float64            `bson:"totalRevenue" json:"totalRevenue"`
}

// TopProductsForVendor ranks a vendor's products by units sold since the cutoff
func (s *Store) TopProductsForVendor(ctx context.Context, vendorID primitive.ObjectID, since time.Time, limit int64) ([]ProductSalesRow, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"items.vendor": vendorID,
			"status":       bson.M{"$ne": "cancelled"},
			"createdAt":    bson.M{"$gte": since},
		}}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$match", Value: bson.M{"items.vendor": vendorID}}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$items.product",
			"totalQuantity": bson.M{"$sum": "$items.quantity"},
			"totalRevenue":  bson.M{"$sum": "$items.total"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "product",
		}}},
		{{Key: "$unwind", Value: "$product"}},
		{{Key: "$project", Value: bson.M{
			"productName":   "$product.name",
			"productImage":  bson.M{"$arrayElemAt": bson.A{"$product.images", 0}},
			"totalQuantity": 1,
			"totalRevenue":  1,
		}}},
		{{Key: "$sort", Value: bson.M{"totalQuantity": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := s.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []ProductSalesRow{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// VendorItemRevenue sums a vendor's paid line-item revenue across all time
func (s *Store) VendorItemRevenue(ctx context.Context, vendorID primitive.ObjectID) (float64, error) {
	match := PaidOrderMatch()
	match["items.vendor"] = vendorID

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$match", Value: bson.M{"items.vendor": vendorID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "revenue": bson.M{"$sum": "$items.total"}}}},
	}

	cur, err := s.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var results []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Revenue, nil
}

// VendorRevenueBetween sums a vendor's paid line-item revenue inside [from, to)
func (s *Store) VendorRevenueBetween(ctx context.Context, vendorID primitive.ObjectID, from, to time.Time) (float64, error) {
	match := PaidOrderMatch()
	match["items.vendor"] = vendorID
	match["createdAt"] = bson.M{"$gte": from, "$lt": to}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$match", Value: bson.M{"items.vendor": vendorID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "revenue": bson.M{"$sum": "$items.total"}}}},
	}

	cur, err := s.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var results []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Revenue, nil
}

// VendorSalesByDay groups a vendor's paid line-item revenue per calendar day
func (s *Store) VendorSalesByDay(ctx context.Context, vendorID primitive.ObjectID, since time.Time) ([]RevenuePoint, error) {
	match := PaidOrderMatch()
	match["items.vendor"] = vendorID
	match["createdAt"] = bson.M{"$gte": since}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$match", Value: bson.M{"items.vendor": vendorID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
			"revenue": bson.M{"$sum": "$items.total"},
			"orders":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := s.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	points := []RevenuePoint{}
	if err := cur.All(ctx, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// StatusCount is one order status bucket
type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int    `bson:"count" json:"count"`
}

// OrderStatusBreakdown groups all orders by derived status
func (s *Store) OrderStatusBreakdown(ctx context.Context) ([]StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := s.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := []StatusCount{}
	if err := cur.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// CategoryCount is one product category bucket
type CategoryCount struct {
	Category string `bson:"_id" json:"category"`
	Count    int    `bson:"count" json:"count"`
}

// TopCategories ranks active product categories by product count
func (s *Store) TopCategories(ctx context.Context, limit int64) ([]CategoryCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isActive": true}}},
		{{Key: "$group", Value: bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := s.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := []CategoryCount{}
	if err := cur.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
