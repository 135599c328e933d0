package service

import "errors"

// Errors returned by the order services. All of them describe a request the
// client can correct; handlers map them with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrVariantRequired    = errors.New("product requires a variant")
	ErrVariantMismatch    = errors.New("variant does not belong to product")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrInvalidQuantity    = errors.New("quantity must be >= 1")
	ErrInvalidTransition  = errors.New("invalid order state transition")
	ErrInvalidState       = errors.New("unknown order state")
	ErrInvalidPaymentMode = errors.New("unknown payment mode")
	ErrUnauthorized       = errors.New("unauthorized for this business")
)
