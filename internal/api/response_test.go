package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/service"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := newPagination(2, 10, 35)

	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 4, p.TotalPages)
	assert.Equal(t, int64(35), p.TotalItems)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestNewPaginationSinglePage(t *testing.T) {
	p := newPagination(1, 10, 3)

	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestNewPaginationEmpty(t *testing.T) {
	p := newPagination(1, 10, 0)

	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func statusFor(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, err)
	return w.Code
}

func TestRespondErrorMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(t, store.ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, statusFor(t, store.ErrDuplicateSKU))
	assert.Equal(t, http.StatusBadRequest, statusFor(t, store.ErrDuplicateReview))
	assert.Equal(t, http.StatusBadRequest, statusFor(t, store.ErrDuplicateVendor))
	assert.Equal(t, http.StatusBadRequest, statusFor(t, store.ErrInsufficientStock))
	assert.Equal(t, http.StatusBadRequest, statusFor(t, store.ErrNotCancellable))
	assert.Equal(t, http.StatusBadRequest, statusFor(t, service.ErrOrderClosed))
	assert.Equal(t, http.StatusBadRequest, statusFor(t, service.ErrPurchaseNotVerified))
	assert.Equal(t, http.StatusUnauthorized, statusFor(t, service.ErrInvalidCredentials))
	assert.Equal(t, http.StatusForbidden, statusFor(t, service.ErrVendorNotApproved))
	assert.Equal(t, http.StatusInternalServerError, statusFor(t, assert.AnError))
}
