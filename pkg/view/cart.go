package view

import (
	"encoding/json"

	"esitemart.com/app/internal/cart"
)

type CartLineView struct {
	ItemKey        string            `json:"itemKey"`
	ProductID      string            `json:"productId"`
	VariationID    string            `json:"variationId,omitempty"`
	Title          string            `json:"title"`
	Quantity       int               `json:"quantity"`
	UnitPriceCents int               `json:"unitPriceCents"`
	UnitPrice      string            `json:"unitPrice"`
	LineTotalCents int               `json:"lineTotalCents"`
	LineTotal      string            `json:"lineTotal"`
	StockQty       int               `json:"stockQty"`
	ImageURL       string            `json:"imageUrl,omitempty"`
	SelectedTerms  map[string]string `json:"selectedTerms,omitempty"`
}

type CartView struct {
	ID         string         `json:"id"`
	Lines      []CartLineView `json:"lines"`
	ItemCount  int            `json:"itemCount"`
	TotalCents int            `json:"totalCents"`
	Total      string         `json:"total"`
}

func NewCartView(c cart.Cart, currency string) CartView {
	v := CartView{ID: c.ID, Lines: make([]CartLineView, 0, len(c.Items))}
	for _, it := range c.Items {
		lineTotal := it.Quantity * it.UnitPriceCents
		line := CartLineView{
			ItemKey:        it.ItemKey,
			ProductID:      it.ProductID,
			VariationID:    it.VariationID,
			Title:          it.Title,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			UnitPrice:      MoneyFromCents(it.UnitPriceCents, currency),
			LineTotalCents: lineTotal,
			LineTotal:      MoneyFromCents(lineTotal, currency),
			StockQty:       it.StockQty,
			ImageURL:       it.ImageURL,
		}
		if len(it.SelectedTerms) > 0 {
			_ = json.Unmarshal(it.SelectedTerms, &line.SelectedTerms)
		}
		v.Lines = append(v.Lines, line)
		v.ItemCount += it.Quantity
		v.TotalCents += lineTotal
	}
	v.Total = MoneyFromCents(v.TotalCents, currency)
	return v
}
