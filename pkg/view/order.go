package view

import (
	"encoding/json"
	"time"

	"esitemart.com/app/internal/orders"
)

type OrderSummaryView struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentStatus string    `json:"paymentStatus"`
	TotalCents    int       `json:"totalCents"`
	Total         string    `json:"total"`
	ItemCount     int       `json:"itemCount"`
	PlacedAt      time.Time `json:"placedAt"`
}

type OrderItemView struct {
	ProductID         string `json:"productId"`
	VariationID       string `json:"variationId,omitempty"`
	Title             string `json:"title"`
	Quantity          int    `json:"quantity"`
	UnitPriceCents    int    `json:"unitPriceCents"`
	UnitPrice         string `json:"unitPrice"`
	LineTotalCents    int    `json:"lineTotalCents"`
	LineTotal         string `json:"lineTotal"`
	ImageURL          string `json:"imageUrl,omitempty"`
	EstimatedDelivery string `json:"estimatedDelivery,omitempty"`
}

type OrderDetailView struct {
	OrderSummaryView
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerPhone   string          `json:"customerPhone,omitempty"`
	ShippingAddress map[string]any  `json:"shippingAddress,omitempty"`
	Items           []OrderItemView `json:"items"`
}

func NewOrderSummary(it orders.ListItem, currency string) OrderSummaryView {
	o := it.Order
	return OrderSummaryView{
		ID:            o.ID,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		TotalCents:    o.TotalCents,
		Total:         MoneyFromCents(o.TotalCents, currency),
		ItemCount:     it.Count,
		PlacedAt:      o.CreatedAt,
	}
}

func NewOrderSummaries(items []orders.ListItem, currency string) []OrderSummaryView {
	out := make([]OrderSummaryView, 0, len(items))
	for _, it := range items {
		out = append(out, NewOrderSummary(it, currency))
	}
	return out
}

func NewOrderDetail(o orders.Order, items []orders.OrderItem, currency string) OrderDetailView {
	d := OrderDetailView{
		OrderSummaryView: NewOrderSummary(orders.ListItem{Order: o, Count: len(items)}, currency),
		CustomerName:     o.CustomerName,
		CustomerEmail:    o.CustomerEmail,
		CustomerPhone:    o.CustomerPhone,
	}
	if len(o.ShippingAddressJSON) > 0 {
		_ = json.Unmarshal(o.ShippingAddressJSON, &d.ShippingAddress)
	}
	d.Items = make([]OrderItemView, 0, len(items))
	for _, it := range items {
		v := OrderItemView{
			ProductID:      it.ProductID,
			VariationID:    it.VariationID,
			Title:          it.Title,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			UnitPrice:      MoneyFromCents(it.UnitPriceCents, currency),
			LineTotalCents: it.LineTotalCents,
			LineTotal:      MoneyFromCents(it.LineTotalCents, currency),
			ImageURL:       it.ImageURL,
		}
		if it.EstimatedDelivery != nil {
			v.EstimatedDelivery = it.EstimatedDelivery.Format("2006-01-02")
		}
		d.Items = append(d.Items, v)
	}
	return d
}
