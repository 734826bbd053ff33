package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Validation-class errors are returned with specific, user-safe messages and
// map to 4xx responses. Anything else coming out of the store is a storage
// failure: wrapped, logged in full server-side, and surfaced opaquely.
var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
	ErrForbidden     = errors.New("order belongs to another user")
	ErrInvalidState  = errors.New("only pending orders can be cancelled")
)

// ProductUnavailableError means a cart line referenced a product that is
// absent or inactive. The whole placement fails; nothing is debited.
type ProductUnavailableError struct {
	ProductID uuid.UUID
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %s not found or inactive", e.ProductID)
}

// InsufficientStockError names the offending product along with the
// requested and available quantities.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}
