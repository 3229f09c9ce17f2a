package checkout

import (
	"time"

	"esitemart.com/app/internal/cart"
)

type Contact struct {
	Name  string
	Email string
	Phone string
}

type ShippingAddress struct {
	Address string
	City    string
	State   string
	Pincode string
}

// PayloadItem is the normalized order-line shape handed to order
// creation. EstimatedDelivery is zero when no estimate is available.
type PayloadItem struct {
	ProductID      string
	VariationID    string // empty for simple products
	Title          string
	UnitPriceCents int
	Quantity       int
	SKU            string
	ImageURL       string
	BrandName      string
	CategoryName   string
	SellerID       string
	LeadDays       int
	CutoffTime     string
	StockQty       int // stock snapshot at assembly time

	EstimatedDelivery time.Time
}

type OrderPayload struct {
	Items           []PayloadItem
	Contact         Contact
	ShippingAddress ShippingAddress
	TotalCents      int
}

// BuildOrderPayload maps cart lines into order lines and pairs them with
// the contact and address verbatim. Stock is not re-checked here; order
// creation does that inside its transaction.
func BuildOrderPayload(items []cart.CartItem, contact Contact, addr ShippingAddress, now time.Time) OrderPayload {
	out := OrderPayload{
		Items:           make([]PayloadItem, 0, len(items)),
		Contact:         contact,
		ShippingAddress: addr,
	}
	for _, it := range items {
		pi := PayloadItem{
			ProductID:      it.ProductID,
			VariationID:    it.VariationID,
			Title:          it.Title,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       it.Quantity,
			SKU:            it.SKU,
			ImageURL:       it.ImageURL,
			BrandName:      it.BrandName,
			CategoryName:   it.CategoryName,
			SellerID:       it.SellerID,
			LeadDays:       it.LeadDays,
			CutoffTime:     it.CutoffTime,
			StockQty:       it.StockQty,
		}
		if est, ok := EstimateDeliveryDate(it.LeadDays, it.CutoffTime, now); ok {
			pi.EstimatedDelivery = est
		}
		out.Items = append(out.Items, pi)
		out.TotalCents += it.Quantity * it.UnitPriceCents
	}
	return out
}
