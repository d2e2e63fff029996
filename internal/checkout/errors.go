package checkout

import "errors"

// Validation failures, in precedence order. Only the first failing check
// surfaces to the customer.
var (
	ErrEmptyCart      = errors.New("cart is empty, add items before checkout")
	ErrInvalidTotal   = errors.New("order total is invalid")
	ErrMissingName    = errors.New("customer name is required")
	ErrBelowMinimum   = errors.New("order total is below the delivery minimum")
	ErrMissingAddress = errors.New("delivery address is required")

	ErrIllegalTransition = errors.New("illegal checkout state transition")
)
