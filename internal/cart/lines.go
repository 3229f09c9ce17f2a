package cart

// Pure line-item rules. Every function returns a fresh slice and leaves
// its input untouched, so a rejected operation cannot dent the cart.

// AddLine inserts line or increments an existing line with the same
// ItemKey. An increment past the stock ceiling is rejected outright; a
// brand-new line is clamped to the ceiling instead.
func AddLine(items []CartItem, line CartItem, requestedQty int) ([]CartItem, error) {
	if requestedQty < 1 {
		return nil, ErrInvalidQuantity
	}
	for i := range items {
		if items[i].ItemKey != line.ItemKey {
			continue
		}
		if items[i].Quantity+requestedQty > items[i].StockQty {
			return nil, ErrStockExceeded
		}
		out := cloneLines(items)
		out[i].Quantity += requestedQty
		return out, nil
	}
	if line.StockQty <= 0 {
		return nil, ErrOutOfStock
	}
	line.Quantity = requestedQty
	if line.Quantity > line.StockQty {
		line.Quantity = line.StockQty
	}
	return append(cloneLines(items), line), nil
}

func UpdateLineQty(items []CartItem, itemKey string, newQty int) ([]CartItem, error) {
	if newQty < 1 {
		return nil, ErrInvalidQuantity
	}
	for i := range items {
		if items[i].ItemKey != itemKey {
			continue
		}
		if newQty > items[i].StockQty {
			return nil, ErrStockExceeded
		}
		out := cloneLines(items)
		out[i].Quantity = newQty
		return out, nil
	}
	return nil, ErrLineNotFound
}

// RemoveLine is idempotent: removing an absent key returns the cart as is.
func RemoveLine(items []CartItem, itemKey string) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, it := range items {
		if it.ItemKey == itemKey {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Total is Σ quantity * unit price, in cents.
func Total(items []CartItem) int {
	sum := 0
	for _, it := range items {
		sum += it.Quantity * it.UnitPriceCents
	}
	return sum
}

func Count(items []CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func findLine(items []CartItem, itemKey string) *CartItem {
	for i := range items {
		if items[i].ItemKey == itemKey {
			return &items[i]
		}
	}
	return nil
}

func cloneLines(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}
