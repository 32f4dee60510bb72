package service

import "errors"

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 409

	// ErrEmptyCart rejects a checkout with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrStockConflict is returned under the strict stock policy when a
	// line asks for more than is on hand. Retryable after restock.
	ErrStockConflict = errors.New("insufficient stock")

	// ErrOrderNumberConflict means two checkouts raced for the same
	// daily sequence number and the retry also lost. Retryable.
	ErrOrderNumberConflict = errors.New("order number conflict")
)
