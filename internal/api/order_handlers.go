package api

import (
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/service"

	"github.com/gin-gonic/gin"
)

// createOrder handles checkout
func (h *Handler) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, order)
}

// getOrder serves one order, scoped to the caller's role
func (h *Handler) getOrder(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(c.Request.Context(), id, currentUserID(c), currentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, order)
}

// listMyOrders serves the calling customer's order history
func (h *Handler) listMyOrders(c *gin.Context) {
	opts := listOptions(c)
	orders, total, err := h.orderService.ListCustomerOrders(c.Request.Context(), currentUserID(c), c.Query("status"), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, orders, opts, total)
}

type cancelOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// cancelOrder handles a customer cancelling their order
func (h *Handler) cancelOrder(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req cancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), id, currentUserID(c), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, order)
}

// listVendorOrders serves orders containing the calling vendor's items
func (h *Handler) listVendorOrders(c *gin.Context) {
	opts := listOptions(c)
	orders, total, err := h.orderService.ListVendorOrders(c.Request.Context(), currentUserID(c), c.Query("status"), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, orders, opts, total)
}

// updateOrderStatus handles a vendor advancing their line items
func (h *Handler) updateOrderStatus(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req service.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), id, currentUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, order)
}

// adminListOrders serves all orders, admin scope
func (h *Handler) adminListOrders(c *gin.Context) {
	opts := listOptions(c)
	orders, total, err := h.orderService.ListAllOrders(c.Request.Context(), c.Query("status"), c.Query("search"), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, orders, opts, total)
}
