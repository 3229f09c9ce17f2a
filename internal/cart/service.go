package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service applies the pure line rules and persists the outcome in one
// transaction: the slice a caller gets back is exactly what the
// database holds when the call returns.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Items(ctx context.Context, cartID string) ([]CartItem, error) {
	return NewRepo(s.db).Items(ctx, cartID)
}

func (s *Service) Add(ctx context.Context, cartID string, line CartItem, requestedQty int) ([]CartItem, error) {
	var out []CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := loadItems(tx, cartID)
		if err != nil {
			return err
		}
		next, err := AddLine(items, line, requestedQty)
		if err != nil {
			return err
		}

		updated := findLine(next, line.ItemKey)
		if existing := findLine(items, line.ItemKey); existing != nil {
			if err := tx.Model(&CartItem{}).
				Where("cart_id = ? AND item_key = ?", cartID, line.ItemKey).
				Updates(map[string]any{
					"quantity":   updated.Quantity,
					"updated_at": time.Now(),
				}).Error; err != nil {
				return err
			}
		} else {
			rec := *updated
			rec.ID = uuid.NewString()
			rec.CartID = cartID
			rec.CreatedAt = time.Now()
			rec.UpdatedAt = time.Now()
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}

		if err := touchCart(tx, cartID); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, cartID, itemKey string, newQty int) ([]CartItem, error) {
	var out []CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := loadItems(tx, cartID)
		if err != nil {
			return err
		}
		next, err := UpdateLineQty(items, itemKey, newQty)
		if err != nil {
			return err
		}
		if err := tx.Model(&CartItem{}).
			Where("cart_id = ? AND item_key = ?", cartID, itemKey).
			Updates(map[string]any{
				"quantity":   newQty,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}
		if err := touchCart(tx, cartID); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Remove deletes the line unconditionally; an absent key is a no-op.
func (s *Service) Remove(ctx context.Context, cartID, itemKey string) ([]CartItem, error) {
	var out []CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ? AND item_key = ?", cartID, itemKey).
			Delete(&CartItem{}).Error; err != nil {
			return err
		}
		if err := touchCart(tx, cartID); err != nil {
			return err
		}
		items, err := loadItems(tx, cartID)
		if err != nil {
			return err
		}
		out = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) TotalCents(ctx context.Context, cartID string) (int, error) {
	items, err := s.Items(ctx, cartID)
	if err != nil {
		return 0, err
	}
	return Total(items), nil
}

func loadItems(tx *gorm.DB, cartID string) ([]CartItem, error) {
	var items []CartItem
	err := tx.Where("cart_id = ?", cartID).
		Order("created_at asc, id asc").
		Find(&items).Error
	return items, err
}

func touchCart(tx *gorm.DB, cartID string) error {
	return tx.Model(&Cart{}).
		Where("id = ?", cartID).
		Update("updated_at", time.Now()).Error
}
