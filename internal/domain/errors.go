package domain

import "errors"

// Business errors surfaced to API callers as 400s. Anything else that
// comes out of the storage layer is treated as a transaction failure:
// settlement is all-or-nothing, so callers may safely retry.
var (
	ErrInvalidReference   = errors.New("unknown product or reservation")
	ErrInvalidSize        = errors.New("size not available for this product")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrOutOfStock         = errors.New("not enough stock available to reserve")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNothingToConfirm   = errors.New("no live reservations to confirm")
	ErrTransactionAborted = errors.New("storage transaction aborted")
)

// IsBusinessErr reports whether err should map to a client error
// rather than a generic storage failure.
func IsBusinessErr(err error) bool {
	for _, e := range []error{
		ErrInvalidReference, ErrInvalidSize, ErrInsufficientStock,
		ErrOutOfStock, ErrEmptyCart, ErrNothingToConfirm,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
