package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"esitemart.com/app/internal/cart"
	"esitemart.com/app/internal/checkout"
)

type Service struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, logger: slog.Default()}
}

func (s *Service) SetLogger(l *slog.Logger) { s.logger = l }

type CreateFromCartInput struct {
	CartID         string
	UserID         *string
	Payload        checkout.OrderPayload
	PaymentMethod  string // cod | razorpay
	PaymentStatus  string // unpaid | paid
	IdempotencyKey string
}

type CreateResult struct {
	OrderID string
	// AlreadyPlaced: the idempotency key matched an existing order, no
	// second order was created.
	AlreadyPlaced bool
}

// CreateFromCart places an order in one transaction: re-check and
// deduct stock under row locks, snapshot the payload into order rows,
// clear the cart. A repeated submit with the same idempotency key
// returns the first order untouched.
func (s *Service) CreateFromCart(ctx context.Context, in CreateFromCartInput) (CreateResult, error) {
	if len(in.Payload.Items) == 0 {
		return CreateResult{}, ErrCartEmpty
	}

	var res CreateResult
	err := checkout.WithTxRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		if in.IdempotencyKey != "" {
			var existing Order
			err := tx.First(&existing, "idempotency_key = ?", in.IdempotencyKey).Error
			if err == nil {
				res = CreateResult{OrderID: existing.ID, AlreadyPlaced: true}
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		lines := make([]checkout.StockLine, 0, len(in.Payload.Items))
		for _, it := range in.Payload.Items {
			lines = append(lines, checkout.StockLine{
				ProductID:   it.ProductID,
				VariationID: it.VariationID,
				Qty:         it.Quantity,
			})
		}
		if err := checkout.DeductStockInTx(ctx, tx, lines); err != nil {
			return err
		}

		addrBytes, err := json.Marshal(in.Payload.ShippingAddress)
		if err != nil {
			return err
		}

		var idemKey *string
		if in.IdempotencyKey != "" {
			k := in.IdempotencyKey
			idemKey = &k
		}

		paymentStatus := in.PaymentStatus
		if paymentStatus == "" {
			paymentStatus = PaymentUnpaid
		}

		o := Order{
			ID:                  uuid.NewString(),
			UserID:              in.UserID,
			CustomerName:        in.Payload.Contact.Name,
			CustomerEmail:       in.Payload.Contact.Email,
			CustomerPhone:       in.Payload.Contact.Phone,
			Status:              StatusPending,
			PaymentMethod:       in.PaymentMethod,
			PaymentStatus:       paymentStatus,
			SubtotalCents:       in.Payload.TotalCents,
			TotalCents:          in.Payload.TotalCents,
			ShippingAddressJSON: datatypes.JSON(addrBytes),
			IdempotencyKey:      idemKey,
			CreatedAt:           time.Now(),
			UpdatedAt:           time.Now(),
		}
		if err := tx.Create(&o).Error; err != nil {
			return err
		}

		for _, it := range in.Payload.Items {
			rec := OrderItem{
				ID:             uuid.NewString(),
				OrderID:        o.ID,
				ProductID:      it.ProductID,
				VariationID:    it.VariationID,
				Title:          it.Title,
				UnitPriceCents: it.UnitPriceCents,
				Quantity:       it.Quantity,
				LineTotalCents: it.Quantity * it.UnitPriceCents,
				SKU:            it.SKU,
				ImageURL:       it.ImageURL,
				BrandName:      it.BrandName,
				CategoryName:   it.CategoryName,
				SellerID:       it.SellerID,
				LeadDays:       it.LeadDays,
				CutoffTime:     it.CutoffTime,
				StockSnapshot:  it.StockQty,
				CreatedAt:      time.Now(),
			}
			if !it.EstimatedDelivery.IsZero() {
				est := it.EstimatedDelivery
				rec.EstimatedDelivery = &est
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}

		// Succeeded clears the cart in the same transaction.
		if err := tx.Where("cart_id = ?", in.CartID).Delete(&cart.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&cart.Cart{}).
			Where("id = ?", in.CartID).
			Updates(map[string]any{"status": cart.StatusOrdered, "updated_at": time.Now()}).Error; err != nil {
			return err
		}

		res = CreateResult{OrderID: o.ID}
		return nil
	})
	if err != nil {
		return CreateResult{}, err
	}

	s.logger.InfoContext(ctx, "order placed",
		"order_id", res.OrderID,
		"cart_id", in.CartID,
		"payment_method", in.PaymentMethod,
		"deduped", res.AlreadyPlaced,
	)
	return res, nil
}
