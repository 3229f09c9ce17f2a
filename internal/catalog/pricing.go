package catalog

// ResolvePrice returns the effective unit price in cents: the sale
// price wins only when it is positive and strictly below the list price.
func ResolvePrice(priceCents, salePriceCents int) int {
	if salePriceCents > 0 && salePriceCents < priceCents {
		return salePriceCents
	}
	return priceCents
}

func (v Variation) ResolvedPriceCents() int {
	return ResolvePrice(v.PriceCents, v.SalePriceCents)
}

// DisplayPriceCents is the price shown in list views: a simple product's
// own resolved price, or the cheapest variation of a variable product.
func DisplayPriceCents(p Product) int {
	if p.ProductType != TypeVariable {
		return ResolvePrice(p.PriceCents, p.SalePriceCents)
	}
	if len(p.Variations) == 0 {
		return 0
	}
	min := p.Variations[0].ResolvedPriceCents()
	for _, v := range p.Variations[1:] {
		if c := v.ResolvedPriceCents(); c < min {
			min = c
		}
	}
	return min
}
