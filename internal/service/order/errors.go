package order

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidUserID         = errors.New("invalid user id")
	ErrInvalidOrderID        = errors.New("invalid order id")
	ErrEmptyOrder            = errors.New("order has no items")
	ErrInvalidItem           = errors.New("invalid order item")

	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderConflict     = errors.New("order already exists")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrAlreadyPaid       = errors.New("order already paid")
	ErrAmountMismatch    = errors.New("payment amount does not match order total")
)
