package service

import "errors"

var (
	ErrVendorNotFound      = errors.New("vendor profile not found")
	ErrVendorNotApproved   = errors.New("vendor profile not found or not approved")
	ErrInvalidCategory     = errors.New("invalid product category")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrOrderClosed         = errors.New("order has been cancelled")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountDisabled     = errors.New("account is disabled")
	ErrPurchaseNotVerified = errors.New("product was never delivered to this customer")
	ErrInvalidModeration   = errors.New("invalid moderation action")
)
