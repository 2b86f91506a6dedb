package shop

import "errors"

var (
	ErrArticleNotFound  = errors.New("article not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrLineNotFound     = errors.New("order line not found")
	ErrCheckoutNotFound = errors.New("checkout not found")
	// ErrOrderRejected is returned when an order refuses a line or a change.
	ErrOrderRejected = errors.New("order rejected")
	ErrStockFull     = errors.New("stock is full")
	ErrDirectoryFull = errors.New("customer directory is full")
	ErrInvalidInput  = errors.New("invalid input")
	// ErrIdempotencyConflict is returned when an idempotency key is reused
	// for a different checkout request.
	ErrIdempotencyConflict = errors.New("idempotency key conflict")
)
