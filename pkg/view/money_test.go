package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyFromCents(t *testing.T) {
	assert.Equal(t, "₹10.00", MoneyFromCents(1000, "INR"))
	assert.Equal(t, "₹0.05", MoneyFromCents(5, "INR"))
	assert.Equal(t, "$12.34", MoneyFromCents(1234, "USD"))
	assert.Equal(t, "€0.00", MoneyFromCents(0, "EUR"))
	assert.Equal(t, "XYZ 1.00", MoneyFromCents(100, "XYZ"))
}
