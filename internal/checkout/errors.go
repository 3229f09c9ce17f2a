package checkout

import "fmt"

type OutOfStockItem struct {
	ItemID    string // variation id, or product id for simple products
	Requested int
	Available int
}

type OutOfStockError struct {
	Items []OutOfStockItem
}

func (e *OutOfStockError) Error() string {
	if len(e.Items) == 0 {
		return "out of stock"
	}
	it := e.Items[0]
	return fmt.Sprintf("out of stock: item=%s requested=%d available=%d", it.ItemID, it.Requested, it.Available)
}
