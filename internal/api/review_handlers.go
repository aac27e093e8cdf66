package api

import (
	"strconv"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/service"

	"github.com/gin-gonic/gin"
)

// createReview handles a customer submitting a review
func (h *Handler) createReview(c *gin.Context) {
	var req service.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, review)
}

// updateReview handles a customer editing their review
func (h *Handler) updateReview(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req service.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), id, currentUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, review)
}

// deleteReview handles a customer removing their review
func (h *Handler) deleteReview(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.reviewService.DeleteReview(c.Request.Context(), id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Review deleted")
}

// listProductReviews serves approved reviews for a product with the rating
// distribution
func (h *Handler) listProductReviews(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	rating, _ := strconv.Atoi(c.Query("rating"))

	opts := listOptions(c)
	reviews, total, distribution, err := h.reviewService.ProductReviews(c.Request.Context(), id, rating, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	page, limit := opts.PageLimit()
	respondOK(c, gin.H{
		"reviews":      reviews,
		"distribution": distribution,
		"pagination":   newPagination(page, limit, total),
	})
}

// uploadReviewImages accepts multipart image uploads for the author's review
func (h *Handler) uploadReviewImages(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondBadRequest(c, "Invalid multipart form")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		respondBadRequest(c, "No images provided")
		return
	}

	paths, err := h.saveUploads(c, files)
	if err != nil {
		respondError(c, err)
		return
	}

	review, err := h.reviewService.AddReviewImages(c.Request.Context(), id, currentUserID(c), paths)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, review)
}

// listVendorPublicReviews serves approved reviews on a vendor's storefront
func (h *Handler) listVendorPublicReviews(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	opts := listOptions(c)
	reviews, total, err := h.reviewService.PublicVendorReviews(c.Request.Context(), id, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, reviews, opts, total)
}

// listVendorReviews serves reviews across the calling vendor's products
func (h *Handler) listVendorReviews(c *gin.Context) {
	opts := listOptions(c)
	reviews, total, err := h.reviewService.VendorReviews(c.Request.Context(), currentUserID(c), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, reviews, opts, total)
}

type respondReviewRequest struct {
	Message string `json:"message" binding:"required"`
}

// respondToReview records the vendor's public reply on a review
func (h *Handler) respondToReview(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req respondReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	review, err := h.reviewService.RespondToReview(c.Request.Context(), id, currentUserID(c), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, review)
}

// adminListReviews serves all reviews with optional status (all, approved,
// pending) and star rating filters
func (h *Handler) adminListReviews(c *gin.Context) {
	status := c.DefaultQuery("status", "all")
	rating, _ := strconv.Atoi(c.Query("rating"))

	opts := listOptions(c)
	reviews, total, err := h.reviewService.AllReviews(c.Request.Context(), status, rating, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, reviews, opts, total)
}

// adminPendingReviews serves reviews awaiting moderation
func (h *Handler) adminPendingReviews(c *gin.Context) {
	opts := listOptions(c)
	reviews, total, err := h.reviewService.PendingReviews(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, reviews, opts, total)
}

type moderateReviewRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
	Reason string `json:"reason,omitempty"`
}

// moderateReview approves or rejects a review
func (h *Handler) moderateReview(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req moderateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	review, err := h.reviewService.ModerateReview(c.Request.Context(), id, req.Action, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, review)
}
