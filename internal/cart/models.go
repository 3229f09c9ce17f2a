package cart

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusOpen    = "open"
	StatusOrdered = "ordered"
)

type Cart struct {
	ID     string  `gorm:"type:char(36);primaryKey"`
	UserID *string `gorm:"type:char(36);index:ix_carts_user_id"`
	Status string  `gorm:"type:varchar(16);not null;default:open"`

	Items []CartItem `gorm:"foreignKey:CartID"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Cart) TableName() string { return "carts" }

// CartItem is one cart line. ItemKey is the line identity: the
// variation id for variable products, the product id for simple ones.
// Everything else is a denormalized snapshot taken at add-to-cart time.
type CartItem struct {
	ID      string `gorm:"type:char(36);primaryKey"`
	CartID  string `gorm:"type:char(36);not null;uniqueIndex:ux_cart_items_cart_key,priority:1"`
	ItemKey string `gorm:"type:char(36);not null;uniqueIndex:ux_cart_items_cart_key,priority:2"`

	ProductID   string `gorm:"type:char(36);not null"`
	VariationID string `gorm:"type:char(36)"`

	Title          string `gorm:"type:varchar(255);not null"`
	UnitPriceCents int    `gorm:"not null"`
	Quantity       int    `gorm:"not null"`
	StockQty       int    `gorm:"not null"` // stock ceiling snapshot
	SKU            string `gorm:"type:varchar(64)"`
	ImageURL       string `gorm:"type:varchar(512)"`

	BrandName    string `gorm:"type:varchar(191)"`
	CategoryName string `gorm:"type:varchar(191)"`
	SellerID     string `gorm:"type:char(36)"`

	LeadDays   int    `gorm:"not null"`
	CutoffTime string `gorm:"type:char(5)"`

	// attribute id -> chosen term id, kept for display only
	SelectedTerms datatypes.JSON `gorm:"type:json"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (CartItem) TableName() string { return "cart_items" }
