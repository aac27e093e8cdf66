package service

import (
	"context"
	"time"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/store"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// RatingAggregator recomputes denormalized product and vendor ratings from
// the approved review set. Every change to that set, including moderation
// rejections, goes through here so the stored averages never go stale.
type RatingAggregator struct {
	store  *store.Store
	logger *zap.Logger
}

// NewRatingAggregator creates a new rating aggregator
func NewRatingAggregator(st *store.Store) *RatingAggregator {
	return &RatingAggregator{
		store:  st,
		logger: util.GetLogger(),
	}
}

// RecomputeProduct refreshes the product's rating from its approved reviews
func (a *RatingAggregator) RecomputeProduct(ctx context.Context, productID primitive.ObjectID) error {
	ctx, span := util.StartSpan(ctx, "RatingAggregator.RecomputeProduct")
	defer span.End()

	start := time.Now()
	rating, err := a.store.RatingStats(ctx, "product", productID)
	if err != nil {
		return err
	}
	if err := a.store.SetProductRating(ctx, productID, rating); err != nil {
		return err
	}
	util.RatingRecomputeLatency.Observe(time.Since(start).Seconds())

	a.logger.Debug("Product rating recomputed",
		zap.String("product_id", productID.Hex()),
		zap.Float64("average", rating.Average),
		zap.Int("count", rating.Count))
	return nil
}

// RecomputeVendor refreshes the vendor's rating from its approved reviews
func (a *RatingAggregator) RecomputeVendor(ctx context.Context, vendorID primitive.ObjectID) error {
	ctx, span := util.StartSpan(ctx, "RatingAggregator.RecomputeVendor")
	defer span.End()

	start := time.Now()
	rating, err := a.store.RatingStats(ctx, "vendor", vendorID)
	if err != nil {
		return err
	}
	if err := a.store.SetVendorRating(ctx, vendorID, rating); err != nil {
		return err
	}
	util.RatingRecomputeLatency.Observe(time.Since(start).Seconds())

	a.logger.Debug("Vendor rating recomputed",
		zap.String("vendor_id", vendorID.Hex()),
		zap.Float64("average", rating.Average),
		zap.Int("count", rating.Count))
	return nil
}

// Recompute refreshes both sides touched by a review
func (a *RatingAggregator) Recompute(ctx context.Context, productID, vendorID primitive.ObjectID) error {
	if err := a.RecomputeProduct(ctx, productID); err != nil {
		return err
	}
	return a.RecomputeVendor(ctx, vendorID)
}
