package orders

import "errors"

var (
	ErrCartEmpty     = errors.New("cart is empty")
	ErrBadTransition = errors.New("invalid order status transition")
)
