package orders

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type ListParams struct {
	Page     int
	PageSize int
	Status   string // optional filter
}

type ListResult struct {
	Items []ListItem
	Total int64
}

type ListItem struct {
	Order Order
	Count int
}

func (r *Repo) ListByUser(ctx context.Context, userID, userEmail string, in ListParams) (ListResult, error) {
	// Guest orders placed with the same email before signing up belong
	// to the user too.
	q := r.db.WithContext(ctx).Model(&Order{}).
		Where("user_id = ? OR (user_id IS NULL AND customer_email = ?)", userID, strings.ToLower(userEmail))
	return r.list(ctx, q, in)
}

func (r *Repo) ListAll(ctx context.Context, in ListParams) (ListResult, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&Order{}), in)
}

func (r *Repo) list(ctx context.Context, q *gorm.DB, in ListParams) (ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}
	if status := strings.TrimSpace(in.Status); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var list []Order
	if err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&list).Error; err != nil {
		return ListResult{}, err
	}

	items := make([]ListItem, len(list))
	for i, o := range list {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderItem{}).Where("order_id = ?", o.ID).Count(&count).Error; err != nil {
			count = 0
		}
		items[i] = ListItem{Order: o, Count: int(count)}
	}

	return ListResult{Items: items, Total: total}, nil
}

func (r *Repo) GetWithItems(ctx context.Context, id string) (Order, []OrderItem, error) {
	var o Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return Order{}, nil, err
	}
	var items []OrderItem
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items, "order_id = ?", id).Error; err != nil {
		return Order{}, nil, err
	}
	return o, items, nil
}

func (r *Repo) GetByIdempotencyKey(ctx context.Context, key string) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).First(&o, "idempotency_key = ?", key).Error
	return o, err
}
