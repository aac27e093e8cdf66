package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/service"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/store"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the page of a list response
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

func newPagination(page, limit int, total int64) *Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

func respondList(c *gin.Context, data interface{}, opts store.ListOptions, total int64) {
	page, limit := opts.PageLimit()
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Data:       data,
		Pagination: newPagination(page, limit, total),
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: message})
}

// respondError maps service and store errors onto HTTP statuses. Unknown
// errors get a generic 500 so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, service.ErrVendorNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Message: "Resource not found"})
	case errors.Is(err, store.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Email already registered"})
	case errors.Is(err, store.ErrDuplicateSKU):
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "SKU already in use"})
	case errors.Is(err, store.ErrDuplicateReview):
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Product already reviewed"})
	case errors.Is(err, store.ErrDuplicateVendor):
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Vendor profile already exists"})
	case errors.Is(err, store.ErrProductUnavailable),
		errors.Is(err, store.ErrInsufficientStock),
		errors.Is(err, store.ErrNotCancellable),
		errors.Is(err, service.ErrOrderClosed),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidModeration),
		errors.Is(err, service.ErrPurchaseNotVerified):
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, Response{Success: false, Message: "Invalid email or password"})
	case errors.Is(err, service.ErrAccountDisabled),
		errors.Is(err, service.ErrVendorNotApproved):
		c.JSON(http.StatusForbidden, Response{Success: false, Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, Response{Success: false, Message: "Internal server error"})
	}
}

// listOptions reads standard pagination and sorting query parameters
func listOptions(c *gin.Context) store.ListOptions {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	return store.ListOptions{
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
}
