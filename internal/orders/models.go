package orders

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

const (
	PaymentCOD     = "cod"
	PaymentGateway = "razorpay"
)

const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

type Order struct {
	ID     string  `gorm:"type:char(36);primaryKey"`
	UserID *string `gorm:"type:char(36);index:ix_orders_user_id"`

	CustomerName  string `gorm:"type:varchar(191);not null"`
	CustomerEmail string `gorm:"type:varchar(255);not null;index:ix_orders_customer_email"`
	CustomerPhone string `gorm:"type:varchar(32)"`

	Status        string `gorm:"type:varchar(16);not null;index:ix_orders_status"`
	PaymentMethod string `gorm:"type:varchar(16);not null"`
	PaymentStatus string `gorm:"type:varchar(16);not null"`

	SubtotalCents int `gorm:"not null"`
	TotalCents    int `gorm:"not null"`

	ShippingAddressJSON datatypes.JSON `gorm:"type:json"`

	// Guards double submission: one key, one order.
	IdempotencyKey *string `gorm:"type:varchar(64);uniqueIndex:ux_orders_idempotency_key"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID      string `gorm:"type:char(36);primaryKey"`
	OrderID string `gorm:"type:char(36);not null;index:ix_order_items_order_id"`

	ProductID   string `gorm:"type:char(36);not null"`
	VariationID string `gorm:"type:char(36)"`

	Title          string `gorm:"type:varchar(255);not null"`
	UnitPriceCents int    `gorm:"not null"`
	Quantity       int    `gorm:"not null"`
	LineTotalCents int    `gorm:"not null"`
	SKU            string `gorm:"type:varchar(64)"`
	ImageURL       string `gorm:"type:varchar(512)"`
	BrandName      string `gorm:"type:varchar(191)"`
	CategoryName   string `gorm:"type:varchar(191)"`
	SellerID       string `gorm:"type:char(36);index:ix_order_items_seller_id"`

	LeadDays          int        `gorm:"not null"`
	CutoffTime        string     `gorm:"type:char(5)"`
	EstimatedDelivery *time.Time `gorm:"type:datetime(3)"`
	StockSnapshot     int        `gorm:"not null"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (OrderItem) TableName() string { return "order_items" }
