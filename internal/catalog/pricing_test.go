package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePrice(t *testing.T) {
	tests := []struct {
		name  string
		price int
		sale  int
		want  int
	}{
		{"sale wins when lower", 10000, 7500, 7500},
		{"zero sale means no sale", 10000, 0, 10000},
		{"negative sale ignored", 10000, -100, 10000},
		{"sale equal to price ignored", 10000, 10000, 10000},
		{"sale above price ignored", 10000, 12000, 10000},
		{"one cent sale wins", 10000, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePrice(tt.price, tt.sale))
		})
	}
}

func TestDisplayPriceCents_Simple(t *testing.T) {
	p := Product{ProductType: TypeSimple, PriceCents: 5000, SalePriceCents: 4000}
	assert.Equal(t, 4000, DisplayPriceCents(p))
}

func TestDisplayPriceCents_VariableUsesCheapestVariation(t *testing.T) {
	p := Product{
		ProductType: TypeVariable,
		PriceCents:  99999, // ignored for variable products
		Variations: []Variation{
			{PriceCents: 8000, SalePriceCents: 0},
			{PriceCents: 9000, SalePriceCents: 6500},
			{PriceCents: 7000, SalePriceCents: 7500}, // bad sale, resolves to 7000
		},
	}
	assert.Equal(t, 6500, DisplayPriceCents(p))
}

func TestDisplayPriceCents_VariableWithoutVariations(t *testing.T) {
	p := Product{ProductType: TypeVariable, PriceCents: 5000}
	assert.Equal(t, 0, DisplayPriceCents(p))
}
