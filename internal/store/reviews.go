package store

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertReview inserts a new review
func (s *Store) InsertReview(ctx context.Context, review *models.Review) error {
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	res, err := s.reviews.InsertOne(ctx, review)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateReview
	}
	if err != nil {
		return err
	}
	review.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetReview retrieves a review by ID
func (s *Store) GetReview(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := s.reviews.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetCustomerReview retrieves a review only if the customer authored it
func (s *Store) GetCustomerReview(ctx context.Context, id, customerID primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := s.reviews.FindOne(ctx, bson.M{"_id": id, "customer": customerID}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetVendorReview retrieves a review only if it targets the vendor
func (s *Store) GetVendorReview(ctx context.Context, id, vendorID primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := s.reviews.FindOne(ctx, bson.M{"_id": id, "vendor": vendorID}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// HasReview reports whether the customer already reviewed the product
func (s *Store) HasReview(ctx context.Context, customerID, productID primitive.ObjectID) (bool, error) {
	count, err := s.reviews.CountDocuments(ctx, bson.M{"customer": customerID, "product": productID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReviewFilter narrows review list queries
type ReviewFilter struct {
	Product      *primitive.ObjectID
	Vendor       *primitive.ObjectID
	ApprovedOnly bool
	PendingOnly  bool
	Rating       int
}

func (f ReviewFilter) build() bson.M {
	filter := bson.M{}
	if f.Product != nil {
		filter["product"] = *f.Product
	}
	if f.Vendor != nil {
		filter["vendor"] = *f.Vendor
	}
	if f.ApprovedOnly {
		filter["isApproved"] = true
	} else if f.PendingOnly {
		filter["isApproved"] = false
	}
	if f.Rating > 0 {
		filter["rating"] = f.Rating
	}
	return filter
}

// ListReviews returns a page of reviews and the total match count
func (s *Store) ListReviews(ctx context.Context, f ReviewFilter, opts ListOptions) ([]models.Review, int64, error) {
	filter := f.build()

	cur, err := s.reviews.Find(ctx, filter, opts.findOptions())
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var reviews []models.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}

	total, err := s.reviews.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// UpdateReview applies the given field updates and returns the fresh document
func (s *Store) UpdateReview(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Review, error) {
	set["updatedAt"] = time.Now()

	var review models.Review
	err := s.reviews.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes a review permanently
func (s *Store) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.reviews.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RecentReviews returns the most recently submitted reviews
func (s *Store) RecentReviews(ctx context.Context, filter bson.M, limit int64) ([]models.Review, error) {
	cur, err := s.reviews.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reviews []models.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ratingAggregate folds a rating sum and review count into the persisted
// Rating shape: the mean rounded to one decimal. Zero reviews yields the
// zero aggregate.
func ratingAggregate(sum float64, count int) models.Rating {
	if count == 0 {
		return models.Rating{}
	}
	return models.Rating{
		Average: math.Round(sum/float64(count)*10) / 10,
		Count:   count,
	}
}

// RatingStats aggregates the approved reviews matching scopeField (product or
// vendor) into a mean rounded to one decimal plus a count
func (s *Store) RatingStats(ctx context.Context, scopeField string, id primitive.ObjectID) (models.Rating, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{scopeField: id, "isApproved": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"sum":   bson.M{"$sum": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := s.reviews.Aggregate(ctx, pipeline)
	if err != nil {
		return models.Rating{}, err
	}
	defer cur.Close(ctx)

	var results []struct {
		Sum   float64 `bson:"sum"`
		Count int     `bson:"count"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return models.Rating{}, err
	}
	if len(results) == 0 {
		return ratingAggregate(0, 0), nil
	}

	return ratingAggregate(results[0].Sum, results[0].Count), nil
}

// RatingBucket is one entry of a rating distribution
type RatingBucket struct {
	Rating int `bson:"_id" json:"rating"`
	Count  int `bson:"count" json:"count"`
}

// RatingDistribution groups a product's approved reviews by star value
func (s *Store) RatingDistribution(ctx context.Context, productID primitive.ObjectID) ([]RatingBucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product": productID, "isApproved": true}}},
		{{Key: "$group", Value: bson.M{"_id": "$rating", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": -1}}},
	}

	cur, err := s.reviews.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	buckets := []RatingBucket{}
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}
