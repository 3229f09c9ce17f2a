package view

import "esitemart.com/app/internal/catalog"

type ProductSummary struct {
	ID            string `json:"id"`
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	ProductType   string `json:"productType"`
	PriceCents    int    `json:"priceCents"`
	Price         string `json:"price"`
	FeaturedImage string `json:"featuredImage,omitempty"`
	InStock       bool   `json:"inStock"`
}

type ProductDetail struct {
	ProductSummary
	Description    string          `json:"description"`
	SalePriceCents int             `json:"salePriceCents,omitempty"`
	StockQty       int             `json:"stockQty"`
	SKU            string          `json:"sku,omitempty"`
	CategoryID     string          `json:"categoryId,omitempty"`
	BrandID        string          `json:"brandId,omitempty"`
	LeadDays       int             `json:"leadDays"`
	AttributeIDs   []string        `json:"attributeIds,omitempty"`
	TagIDs         []string        `json:"tagIds,omitempty"`
	Variations     []VariationView `json:"variations,omitempty"`
	Images         []ImageView     `json:"images,omitempty"`
}

type VariationView struct {
	ID         string   `json:"id"`
	TermIDs    []string `json:"termIds"`
	PriceCents int      `json:"priceCents"`
	Price      string   `json:"price"`
	StockQty   int      `json:"stockQty"`
	SKU        string   `json:"sku,omitempty"`
	ImageURL   string   `json:"imageUrl,omitempty"`
}

type ImageView struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

type AttributeView struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Slug  string     `json:"slug"`
	Terms []TermView `json:"terms"`
}

type TermView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func NewAttributeView(a catalog.Attribute) AttributeView {
	v := AttributeView{ID: a.ID, Name: a.Name, Slug: a.Slug, Terms: make([]TermView, 0, len(a.Terms))}
	for _, t := range a.Terms {
		v.Terms = append(v.Terms, TermView{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	return v
}

func NewAttributeViews(list []catalog.Attribute) []AttributeView {
	out := make([]AttributeView, 0, len(list))
	for _, a := range list {
		out = append(out, NewAttributeView(a))
	}
	return out
}

type TaxonView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func NewProductSummary(p catalog.Product, currency string) ProductSummary {
	price := catalog.DisplayPriceCents(p)
	return ProductSummary{
		ID:            p.ID,
		Slug:          p.Slug,
		Title:         p.Title,
		ProductType:   p.ProductType,
		PriceCents:    price,
		Price:         MoneyFromCents(price, currency),
		FeaturedImage: p.FeaturedImage,
		InStock:       productInStock(p),
	}
}

func NewProductSummaries(ps []catalog.Product, currency string) []ProductSummary {
	out := make([]ProductSummary, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProductSummary(p, currency))
	}
	return out
}

func NewProductDetail(p catalog.Product, currency string) ProductDetail {
	d := ProductDetail{
		ProductSummary: NewProductSummary(p, currency),
		Description:    p.Description,
		SalePriceCents: p.SalePriceCents,
		StockQty:       p.StockQty,
		SKU:            p.SKU,
		LeadDays:       p.LeadDays,
		AttributeIDs:   p.AttributeOrder(),
	}
	if p.CategoryID != nil {
		d.CategoryID = *p.CategoryID
	}
	if p.BrandID != nil {
		d.BrandID = *p.BrandID
	}
	d.TagIDs = p.TagIDList()
	for _, v := range p.Variations {
		resolved := v.ResolvedPriceCents()
		d.Variations = append(d.Variations, VariationView{
			ID:         v.ID,
			TermIDs:    v.TermIDList(),
			PriceCents: resolved,
			Price:      MoneyFromCents(resolved, currency),
			StockQty:   v.StockQty,
			SKU:        v.SKU,
			ImageURL:   v.ImageURL,
		})
	}
	for _, img := range p.Images {
		d.Images = append(d.Images, ImageView{ID: img.ID, URL: img.URL, Position: img.Position})
	}
	return d
}

func NewTaxonView(t catalog.Taxon) TaxonView {
	return TaxonView{ID: t.ID, Name: t.Name, Slug: t.Slug, ImageURL: t.ImageURL}
}

func productInStock(p catalog.Product) bool {
	if p.ProductType != catalog.TypeVariable {
		return p.StockQty > 0
	}
	for _, v := range p.Variations {
		if v.StockQty > 0 {
			return true
		}
	}
	return false
}
