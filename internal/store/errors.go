package store

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrProductUnavailable = errors.New("product not found or inactive")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrNotCancellable     = errors.New("order not found or cannot be cancelled")
	ErrDuplicateSKU       = errors.New("sku already exists")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateReview    = errors.New("product already reviewed by this customer")
	ErrDuplicateVendor    = errors.New("vendor profile already exists for this user")
)
