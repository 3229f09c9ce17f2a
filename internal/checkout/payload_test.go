package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esitemart.com/app/internal/cart"
)

func TestBuildOrderPayload(t *testing.T) {
	now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	items := []cart.CartItem{
		{
			ProductID:      "p1",
			VariationID:    "v1",
			ItemKey:        "v1",
			Title:          "Headphones (Black)",
			UnitPriceCents: 699900,
			Quantity:       2,
			StockQty:       15,
			LeadDays:       3,
			CutoffTime:     "14:00",
		},
		{
			ProductID:      "p2",
			ItemKey:        "p2",
			Title:          "Desk Lamp",
			UnitPriceCents: 249900,
			Quantity:       1,
			StockQty:       40,
			LeadDays:       0, // no estimate for this one
		},
	}
	contact := Contact{Name: "Asha", Email: "asha@example.com", Phone: "9999999999"}
	addr := ShippingAddress{Address: "12 Hill Rd", City: "Pune", State: "MH", Pincode: "411001"}

	p := BuildOrderPayload(items, contact, addr, now)

	require.Len(t, p.Items, 2)
	assert.Equal(t, contact, p.Contact)
	assert.Equal(t, addr, p.ShippingAddress)
	assert.Equal(t, 2*699900+249900, p.TotalCents)

	assert.Equal(t, "v1", p.Items[0].VariationID)
	assert.Equal(t, 15, p.Items[0].StockQty)
	assert.Equal(t, time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC), p.Items[0].EstimatedDelivery)

	assert.Empty(t, p.Items[1].VariationID)
	assert.True(t, p.Items[1].EstimatedDelivery.IsZero())
}

func TestBuildOrderPayload_Empty(t *testing.T) {
	p := BuildOrderPayload(nil, Contact{}, ShippingAddress{}, time.Now())
	assert.Empty(t, p.Items)
	assert.Zero(t, p.TotalCents)
}
