package api

import (
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/service"

	"github.com/gin-gonic/gin"
)

// listVendors serves the public storefront listing
func (h *Handler) listVendors(c *gin.Context) {
	opts := listOptions(c)
	vendors, total, err := h.vendorService.ListVendors(c.Request.Context(), c.Query("search"), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, vendors, opts, total)
}

// getVendor serves one approved vendor's storefront
func (h *Handler) getVendor(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	vendor, err := h.vendorService.GetVendor(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, vendor)
}

// vendorProfile serves the calling vendor's full profile
func (h *Handler) vendorProfile(c *gin.Context) {
	vendor, err := h.vendorService.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, vendor)
}

// updateVendorProfile handles a vendor editing their profile
func (h *Handler) updateVendorProfile(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	vendor, err := h.vendorService.UpdateProfile(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, vendor)
}

// uploadStoreMedia accepts multipart logo/banner uploads for the vendor's
// storefront
func (h *Handler) uploadStoreMedia(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondBadRequest(c, "Invalid multipart form")
		return
	}

	var logoPath, bannerPath string
	if logos := form.File["logo"]; len(logos) > 0 {
		paths, err := h.saveUploads(c, logos[:1])
		if err != nil {
			respondError(c, err)
			return
		}
		logoPath = paths[0]
	}
	if banners := form.File["banner"]; len(banners) > 0 {
		paths, err := h.saveUploads(c, banners[:1])
		if err != nil {
			respondError(c, err)
			return
		}
		bannerPath = paths[0]
	}
	if logoPath == "" && bannerPath == "" {
		respondBadRequest(c, "No logo or banner provided")
		return
	}

	vendor, err := h.vendorService.SetStoreMedia(c.Request.Context(), currentUserID(c), logoPath, bannerPath)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, vendor)
}

// vendorDashboard serves the vendor dashboard snapshot
func (h *Handler) vendorDashboard(c *gin.Context) {
	dash, err := h.analyticsService.GetVendorDashboard(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, dash)
}

// vendorAnalytics serves the vendor time-series report
func (h *Handler) vendorAnalytics(c *gin.Context) {
	report, err := h.analyticsService.GetVendorAnalytics(c.Request.Context(), currentUserID(c), c.DefaultQuery("period", "30d"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, report)
}

// adminListVendors serves all vendors regardless of approval
func (h *Handler) adminListVendors(c *gin.Context) {
	opts := listOptions(c)
	vendors, total, err := h.vendorService.AllVendors(c.Request.Context(), c.Query("search"), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, vendors, opts, total)
}

// adminPendingVendors serves vendors awaiting approval
func (h *Handler) adminPendingVendors(c *gin.Context) {
	opts := listOptions(c)
	vendors, total, err := h.vendorService.PendingVendors(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, vendors, opts, total)
}

// approveVendor flips a vendor to approved
func (h *Handler) approveVendor(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	vendor, err := h.vendorService.ApproveVendor(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, vendor)
}

type rejectVendorRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// rejectVendor marks a vendor as rejected
func (h *Handler) rejectVendor(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req rejectVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	vendor, err := h.vendorService.RejectVendor(c.Request.Context(), id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, vendor)
}

// adminDashboard serves the platform dashboard snapshot
func (h *Handler) adminDashboard(c *gin.Context) {
	dash, err := h.analyticsService.GetAdminDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, dash)
}

// adminAnalytics serves the platform time-series report
func (h *Handler) adminAnalytics(c *gin.Context) {
	report, err := h.analyticsService.GetAdminAnalytics(c.Request.Context(), c.DefaultQuery("period", "30d"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, report)
}
