package catalog

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	TypeSimple   = "simple"
	TypeVariable = "variable"
)

const (
	StatusActive = "active"
	StatusDraft  = "draft"
)

type Product struct {
	ID          string `gorm:"type:char(36);primaryKey"`
	Slug        string `gorm:"type:varchar(191);not null;uniqueIndex:ux_products_slug"`
	Title       string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`
	ProductType string `gorm:"type:varchar(16);not null"`
	Status      string `gorm:"type:varchar(16);not null;index:ix_products_status"`

	// Simple products carry their own price/stock; variable products
	// carry them per variation.
	PriceCents     int    `gorm:"not null"`
	SalePriceCents int    `gorm:"not null"`
	StockQty       int    `gorm:"not null"`
	SKU            string `gorm:"type:varchar(64)"`

	FeaturedImage string  `gorm:"type:varchar(512)"`
	SellerID      string  `gorm:"type:char(36);index:ix_products_seller_id"`
	CategoryID    *string `gorm:"type:char(36);index:ix_products_category_id"`
	BrandID       *string `gorm:"type:char(36);index:ix_products_brand_id"`

	// Delivery estimate inputs. CutoffTime is "HH:MM"; empty means 23:59.
	LeadDays   int    `gorm:"not null"`
	CutoffTime string `gorm:"type:char(5)"`

	// Ordered attribute ids; variation term lists are positionally
	// aligned with this list.
	AttributeIDs datatypes.JSON `gorm:"type:json"`
	TagIDs       datatypes.JSON `gorm:"type:json"`

	Variations []Variation `gorm:"foreignKey:ProductID"`
	Images     []Image     `gorm:"foreignKey:ProductID"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Product) TableName() string { return "products" }

// AttributeOrder decodes the ordered attribute id list.
func (p Product) AttributeOrder() []string { return decodeIDs(p.AttributeIDs) }

func (p Product) TagIDList() []string { return decodeIDs(p.TagIDs) }

type Variation struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	ProductID string `gorm:"type:char(36);not null;index:ix_variations_product_id"`

	// One term id per parent attribute, positionally aligned with the
	// product's AttributeIDs.
	TermIDs datatypes.JSON `gorm:"type:json"`

	PriceCents     int    `gorm:"not null"`
	SalePriceCents int    `gorm:"not null"`
	StockQty       int    `gorm:"not null"`
	SKU            string `gorm:"type:varchar(64)"`
	ImageURL       string `gorm:"type:varchar(512)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Variation) TableName() string { return "product_variations" }

func (v Variation) TermIDList() []string { return decodeIDs(v.TermIDs) }

type Image struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	ProductID  string    `gorm:"type:char(36);not null;index:ix_product_images_product_id"`
	StorageKey string    `gorm:"type:varchar(512);not null"`
	URL        string    `gorm:"type:varchar(512);not null"`
	Position   int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
}

func (Image) TableName() string { return "product_images" }

type Attribute struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	Name      string    `gorm:"type:varchar(191);not null"`
	Slug      string    `gorm:"type:varchar(191);not null;uniqueIndex:ux_attributes_slug"`
	Terms     []Term    `gorm:"foreignKey:AttributeID"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Attribute) TableName() string { return "attributes" }

type Term struct {
	ID          string    `gorm:"type:char(36);primaryKey"`
	AttributeID string    `gorm:"type:char(36);not null;index:ix_terms_attribute_id"`
	Name        string    `gorm:"type:varchar(191);not null"`
	Slug        string    `gorm:"type:varchar(191);not null"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt   time.Time `gorm:"type:datetime(3);not null"`
}

func (Term) TableName() string { return "attribute_terms" }

func EncodeIDs(ids []string) datatypes.JSON {
	if ids == nil {
		ids = []string{}
	}
	b, _ := json.Marshal(ids)
	return datatypes.JSON(b)
}

func decodeIDs(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil
	}
	return ids
}
