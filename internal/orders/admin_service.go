package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

// AdminService covers the back-office order screens: full listing and
// status progression with transition checks.
type AdminService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db, logger: slog.Default()}
}

func (s *AdminService) SetLogger(l *slog.Logger) { s.logger = l }

func (s *AdminService) List(ctx context.Context, in ListParams) (ListResult, error) {
	return NewRepo(s.db).ListAll(ctx, in)
}

func (s *AdminService) UpdateStatus(ctx context.Context, orderID, newStatus string) error {
	if !KnownStatus(newStatus) {
		return fmt.Errorf("%w: unknown status %q", ErrBadTransition, newStatus)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o Order
		if err := tx.First(&o, "id = ?", orderID).Error; err != nil {
			return err
		}
		if !CanTransition(o.Status, newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrBadTransition, o.Status, newStatus)
		}

		updates := map[string]any{
			"status":     newStatus,
			"updated_at": time.Now(),
		}
		// COD orders settle on delivery.
		if newStatus == StatusDelivered && o.PaymentMethod == PaymentCOD {
			updates["payment_status"] = PaymentPaid
		}
		return tx.Model(&Order{}).Where("id = ?", orderID).Updates(updates).Error
	})
	if err != nil {
		if !errors.Is(err, ErrBadTransition) && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.ErrorContext(ctx, "order status update failed", "order_id", orderID, "err", err)
		}
		return err
	}

	s.logger.InfoContext(ctx, "order status updated", "order_id", orderID, "status", newStatus)
	return nil
}
