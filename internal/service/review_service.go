package service

import (
	"context"
	"errors"
	"time"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/broker"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/models"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/store"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ReviewService handles review submission, moderation, vendor responses and
// the rating recomputation triggered by any change to the approved set.
type ReviewService struct {
	store          *store.Store
	ratings        *RatingAggregator
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(st *store.Store, ratings *RatingAggregator, eventPublisher *broker.EventPublisher) *ReviewService {
	return &ReviewService{
		store:          st,
		ratings:        ratings,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateReviewRequest represents a review submission
type CreateReviewRequest struct {
	Product string   `json:"product" binding:"required"`
	Order   string   `json:"order" binding:"required"`
	Rating  int      `json:"rating" binding:"required,min=1,max=5"`
	Title   string   `json:"title,omitempty"`
	Comment string   `json:"comment" binding:"required"`
	Images  []string `json:"images,omitempty"`
}

// CreateReview accepts a review only from a customer whose referenced order
// was delivered and contains the product. One review per customer+product.
func (s *ReviewService) CreateReview(ctx context.Context, customerID primitive.ObjectID, req *CreateReviewRequest) (*models.Review, error) {
	ctx, span := util.StartSpan(ctx, "ReviewService.CreateReview")
	defer span.End()

	productID, err := primitive.ObjectIDFromHex(req.Product)
	if err != nil {
		return nil, store.ErrNotFound
	}
	orderID, err := primitive.ObjectIDFromHex(req.Order)
	if err != nil {
		return nil, store.ErrNotFound
	}

	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	verified, err := s.store.HasDeliveredOrderWithProduct(ctx, orderID, customerID, productID)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, ErrPurchaseNotVerified
	}

	exists, err := s.store.HasReview(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, store.ErrDuplicateReview
	}

	review := &models.Review{
		Customer:           customerID,
		Product:            productID,
		Vendor:             product.Vendor,
		Order:              orderID,
		Rating:             req.Rating,
		Title:              req.Title,
		Comment:            req.Comment,
		Images:             req.Images,
		IsVerifiedPurchase: true,
		IsApproved:         true,
	}
	if err := s.store.InsertReview(ctx, review); err != nil {
		return nil, err
	}

	util.ReviewsSubmittedTotal.Inc()
	s.logger.Info("Review created",
		zap.String("review_id", review.ID.Hex()),
		zap.String("product_id", productID.Hex()),
		zap.Int("rating", req.Rating))

	if err := s.ratings.Recompute(ctx, productID, product.Vendor); err != nil {
		s.logger.Error("Failed to recompute ratings", zap.Error(err))
	}
	s.publishReviewSubmitted(ctx, review)

	return review, nil
}

// UpdateReviewRequest represents an edit to an existing review
type UpdateReviewRequest struct {
	Rating  *int     `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	Title   *string  `json:"title,omitempty"`
	Comment *string  `json:"comment,omitempty"`
	Images  []string `json:"images,omitempty"`
}

// UpdateReview lets the authoring customer edit their review. A rating change
// triggers recomputation.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID, customerID primitive.ObjectID, req *UpdateReviewRequest) (*models.Review, error) {
	ctx, span := util.StartSpan(ctx, "ReviewService.UpdateReview")
	defer span.End()

	review, err := s.store.GetCustomerReview(ctx, reviewID, customerID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	ratingChanged := false
	if req.Rating != nil && *req.Rating != review.Rating {
		set["rating"] = *req.Rating
		ratingChanged = true
	}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Comment != nil {
		set["comment"] = *req.Comment
	}
	if req.Images != nil {
		set["images"] = req.Images
	}
	if len(set) == 0 {
		return review, nil
	}

	updated, err := s.store.UpdateReview(ctx, reviewID, set)
	if err != nil {
		return nil, err
	}

	if ratingChanged && updated.IsApproved {
		if err := s.ratings.Recompute(ctx, updated.Product, updated.Vendor); err != nil {
			s.logger.Error("Failed to recompute ratings", zap.Error(err))
		}
	}
	return updated, nil
}

// DeleteReview removes a customer's own review and recomputes ratings
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, customerID primitive.ObjectID) error {
	ctx, span := util.StartSpan(ctx, "ReviewService.DeleteReview")
	defer span.End()

	review, err := s.store.GetCustomerReview(ctx, reviewID, customerID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteReview(ctx, reviewID); err != nil {
		return err
	}
	if review.IsApproved {
		if err := s.ratings.Recompute(ctx, review.Product, review.Vendor); err != nil {
			s.logger.Error("Failed to recompute ratings", zap.Error(err))
		}
	}
	return nil
}

// RespondToReview records the owning vendor's public response
func (s *ReviewService) RespondToReview(ctx context.Context, reviewID, userID primitive.ObjectID, comment string) (*models.Review, error) {
	ctx, span := util.StartSpan(ctx, "ReviewService.RespondToReview")
	defer span.End()

	vendor, err := s.store.GetVendorByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetVendorReview(ctx, reviewID, vendor.ID); err != nil {
		return nil, err
	}

	return s.store.UpdateReview(ctx, reviewID, bson.M{
		"vendorResponse": models.VendorResponse{
			Message:     comment,
			RespondedAt: time.Now(),
		},
	})
}

// ModerateReview approves or rejects a review, admin scope. Both directions
// recompute ratings so a rejected review stops counting immediately.
func (s *ReviewService) ModerateReview(ctx context.Context, reviewID primitive.ObjectID, action, reason string) (*models.Review, error) {
	ctx, span := util.StartSpan(ctx, "ReviewService.ModerateReview")
	defer span.End()

	if action != models.ModerationApprove && action != models.ModerationReject {
		return nil, ErrInvalidModeration
	}

	set := bson.M{"isApproved": action == models.ModerationApprove}
	if reason != "" {
		set["moderationReason"] = reason
	}
	updated, err := s.store.UpdateReview(ctx, reviewID, set)
	if err != nil {
		return nil, err
	}

	util.ReviewsModeratedTotal.WithLabelValues(action).Inc()
	s.logger.Info("Review moderated",
		zap.String("review_id", reviewID.Hex()),
		zap.String("action", action))

	if err := s.ratings.Recompute(ctx, updated.Product, updated.Vendor); err != nil {
		s.logger.Error("Failed to recompute ratings", zap.Error(err))
	}
	s.publishReviewModerated(ctx, updated, action)

	return updated, nil
}

// ProductReviews lists approved reviews for a product with its distribution
func (s *ReviewService) ProductReviews(ctx context.Context, productID primitive.ObjectID, rating int, opts store.ListOptions) ([]models.Review, int64, []store.RatingBucket, error) {
	reviews, total, err := s.store.ListReviews(ctx, store.ReviewFilter{
		Product:      &productID,
		ApprovedOnly: true,
		Rating:       rating,
	}, opts)
	if err != nil {
		return nil, 0, nil, err
	}
	distribution, err := s.store.RatingDistribution(ctx, productID)
	if err != nil {
		return nil, 0, nil, err
	}
	return reviews, total, distribution, nil
}

// PublicVendorReviews lists approved reviews for a vendor's storefront
func (s *ReviewService) PublicVendorReviews(ctx context.Context, vendorID primitive.ObjectID, opts store.ListOptions) ([]models.Review, int64, error) {
	return s.store.ListReviews(ctx, store.ReviewFilter{Vendor: &vendorID, ApprovedOnly: true}, opts)
}

// AddReviewImages appends uploaded image paths to the author's review
func (s *ReviewService) AddReviewImages(ctx context.Context, reviewID, customerID primitive.ObjectID, paths []string) (*models.Review, error) {
	review, err := s.store.GetCustomerReview(ctx, reviewID, customerID)
	if err != nil {
		return nil, err
	}
	return s.store.UpdateReview(ctx, reviewID, bson.M{
		"images": append(review.Images, paths...),
	})
}

// VendorReviews lists approved reviews across the calling vendor's products
func (s *ReviewService) VendorReviews(ctx context.Context, userID primitive.ObjectID, opts store.ListOptions) ([]models.Review, int64, error) {
	vendor, err := s.store.GetVendorByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, 0, ErrVendorNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	return s.store.ListReviews(ctx, store.ReviewFilter{Vendor: &vendor.ID, ApprovedOnly: true}, opts)
}

// PendingReviews lists reviews awaiting moderation, admin scope
func (s *ReviewService) PendingReviews(ctx context.Context, opts store.ListOptions) ([]models.Review, int64, error) {
	return s.store.ListReviews(ctx, store.ReviewFilter{PendingOnly: true}, opts)
}

// moderationFilter maps the admin status query (all, approved, pending) and
// an optional star rating onto a review filter
func moderationFilter(status string, rating int) store.ReviewFilter {
	filter := store.ReviewFilter{Rating: rating}
	switch status {
	case "approved":
		filter.ApprovedOnly = true
	case "pending":
		filter.PendingOnly = true
	}
	return filter
}

// AllReviews lists reviews across the platform for moderation, admin scope
func (s *ReviewService) AllReviews(ctx context.Context, status string, rating int, opts store.ListOptions) ([]models.Review, int64, error) {
	return s.store.ListReviews(ctx, moderationFilter(status, rating), opts)
}

func (s *ReviewService) publishReviewSubmitted(ctx context.Context, review *models.Review) {
	if s.eventPublisher == nil {
		return
	}
	event := &models.ReviewSubmittedEvent{
		BaseEvent: newBaseEvent(models.EventTypeReviewSubmitted),
		ReviewID:  review.ID.Hex(),
		ProductID: review.Product.Hex(),
		VendorID:  review.Vendor.Hex(),
		Rating:    review.Rating,
	}
	if err := s.eventPublisher.PublishReviewSubmitted(ctx, event); err != nil {
		s.logger.Error("Failed to publish ReviewSubmitted event", zap.Error(err))
	}
}

func (s *ReviewService) publishReviewModerated(ctx context.Context, review *models.Review, action string) {
	if s.eventPublisher == nil {
		return
	}
	event := &models.ReviewModeratedEvent{
		BaseEvent: newBaseEvent(models.EventTypeReviewModerated),
		ReviewID:  review.ID.Hex(),
		ProductID: review.Product.Hex(),
		VendorID:  review.Vendor.Hex(),
		Action:    action,
	}
	if err := s.eventPublisher.PublishReviewModerated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ReviewModerated event", zap.Error(err))
	}
}
