package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) GetOrCreateUserCart(ctx context.Context, userID string) (Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).
		Where(Cart{UserID: &userID, Status: StatusOpen}).
		Attrs(Cart{ID: uuid.NewString(), CreatedAt: time.Now(), UpdatedAt: time.Now()}).
		FirstOrCreate(&c).Error
	return c, err
}

// CreateGuestCart backs the signed guest-cart cookie with a server row.
func (r *Repo) CreateGuestCart(ctx context.Context) (Cart, error) {
	c := Cart{
		ID:        uuid.NewString(),
		UserID:    nil,
		Status:    StatusOpen,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Create(&c).Error
	return c, err
}

func (r *Repo) Get(ctx context.Context, cartID string) (Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
		First(&c, "id = ?", cartID).Error
	return c, err
}

func (r *Repo) Items(ctx context.Context, cartID string) ([]CartItem, error) {
	var items []CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at asc, id asc").
		Find(&items).Error
	return items, err
}

func (r *Repo) Clear(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&CartItem{}).Error
}
