package cart

import "errors"

var (
	// ErrOutOfStock: the item has no purchasable stock at all.
	ErrOutOfStock = errors.New("out of stock")
	// ErrStockExceeded: the requested quantity would pass the stock ceiling.
	ErrStockExceeded = errors.New("stock exceeded")
	// ErrInvalidQuantity: quantities below 1 are never accepted.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrLineNotFound: quantity update targeted an absent line.
	ErrLineNotFound = errors.New("cart line not found")
)
