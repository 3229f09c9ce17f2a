package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variableProduct() Product {
	return Product{
		ID:           "p1",
		ProductType:  TypeVariable,
		AttributeIDs: EncodeIDs([]string{"color", "size"}),
		Variations: []Variation{
			{ID: "v-red-s", TermIDs: EncodeIDs([]string{"red", "s"}), StockQty: 3},
			{ID: "v-red-m", TermIDs: EncodeIDs([]string{"red", "m"}), StockQty: 0},
			{ID: "v-blue-s", TermIDs: EncodeIDs([]string{"blue", "s"}), StockQty: 7},
		},
	}
}

func TestMatchVariation_FullSelection(t *testing.T) {
	p := variableProduct()

	v := MatchVariation(map[string]string{"color": "blue", "size": "s"}, p.Variations, p.AttributeOrder())
	require.NotNil(t, v)
	assert.Equal(t, "v-blue-s", v.ID)
}

func TestMatchVariation_IncompleteSelection(t *testing.T) {
	p := variableProduct()

	assert.Nil(t, MatchVariation(map[string]string{"color": "red"}, p.Variations, p.AttributeOrder()))
	assert.Nil(t, MatchVariation(map[string]string{}, p.Variations, p.AttributeOrder()))
	assert.Nil(t, MatchVariation(nil, p.Variations, p.AttributeOrder()))
}

func TestMatchVariation_NoCombination(t *testing.T) {
	p := variableProduct()

	v := MatchVariation(map[string]string{"color": "blue", "size": "m"}, p.Variations, p.AttributeOrder())
	assert.Nil(t, v)
}

func TestMatchVariation_PositionalNotNameBased(t *testing.T) {
	// terms are matched by attribute position, so a swapped selection
	// must not resolve
	p := variableProduct()

	v := MatchVariation(map[string]string{"color": "s", "size": "red"}, p.Variations, p.AttributeOrder())
	assert.Nil(t, v)
}

func TestMatchVariation_TermCountMismatchSkipped(t *testing.T) {
	p := variableProduct()
	p.Variations = append(p.Variations, Variation{ID: "v-short", TermIDs: EncodeIDs([]string{"red"})})

	v := MatchVariation(map[string]string{"color": "red", "size": "s"}, p.Variations, p.AttributeOrder())
	require.NotNil(t, v)
	assert.Equal(t, "v-red-s", v.ID)
}

func TestMatchVariation_NoAttributes(t *testing.T) {
	p := variableProduct()
	p.AttributeIDs = EncodeIDs(nil)

	assert.Nil(t, MatchVariation(map[string]string{"color": "red"}, p.Variations, p.AttributeOrder()))
}

func TestSelectVariation(t *testing.T) {
	p := variableProduct()

	v, err := SelectVariation(p, map[string]string{"color": "red", "size": "s"})
	require.NoError(t, err)
	assert.Equal(t, "v-red-s", v.ID)

	_, err = SelectVariation(p, map[string]string{"color": "red"})
	assert.ErrorIs(t, err, ErrIncompleteSelection)
}
