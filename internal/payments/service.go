package payments

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	db       *gorm.DB
	provider Provider
	currency string
	logger   *slog.Logger
}

func NewService(db *gorm.DB, provider Provider, currency string) *Service {
	if currency == "" {
		currency = "INR"
	}
	return &Service{db: db, provider: provider, currency: currency, logger: slog.Default()}
}

func (s *Service) SetLogger(l *slog.Logger) { s.logger = l }

func (s *Service) ProviderName() string { return s.provider.Name() }

// CreateGatewayOrder registers the amount with the gateway and returns
// the reference the hosted widget is opened with.
func (s *Service) CreateGatewayOrder(ctx context.Context, amountCents int, receipt string) (ProviderOrder, error) {
	po, err := s.provider.CreateOrder(ctx, CreateOrderRequest{
		AmountCents: amountCents,
		Currency:    s.currency,
		Receipt:     receipt,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "gateway order creation failed", "err", err)
		return ProviderOrder{}, err
	}
	s.logger.InfoContext(ctx, "gateway order created", "order_ref", po.Ref, "amount_cents", po.AmountCents)
	return po, nil
}

func (s *Service) Verify(cb Callback) error {
	return s.provider.VerifyCallback(cb)
}

// Record persists a verified payment against a placed order.
func (s *Service) Record(ctx context.Context, orderID string, cb Callback, amountCents int) error {
	p := Payment{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		Provider:    s.provider.Name(),
		OrderRef:    cb.OrderRef,
		PaymentRef:  cb.PaymentRef,
		Status:      StatusSucceeded,
		AmountCents: amountCents,
		Currency:    s.currency,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	return s.db.WithContext(ctx).Create(&p).Error
}
