package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) ListActive(ctx context.Context, limit, offset int) ([]Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 24
	}
	var items []Product
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("status = ?", StatusActive).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Preload("Variations", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Order("created_at desc, id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

func (r *Repo) GetBySlug(ctx context.Context, slug string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("slug = ? AND status = ?", slug, StatusActive).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Preload("Variations", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		First(&p).Error
	return p, err
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Preload("Variations", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&p, "id = ?", id).Error
	return p, err
}

// ListByCategory / ListByBrand filter active products by a taxonomy id.
func (r *Repo) ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]Product, error) {
	return r.listByColumn(ctx, "category_id", categoryID, limit, offset)
}

func (r *Repo) ListByBrand(ctx context.Context, brandID string, limit, offset int) ([]Product, error) {
	return r.listByColumn(ctx, "brand_id", brandID, limit, offset)
}

// ListByTag matches against the JSON-encoded tag id list. Ids are
// uuids, so the quoted substring match never collides.
func (r *Repo) ListByTag(ctx context.Context, tagID string, limit, offset int) ([]Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 24
	}
	var items []Product
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("tag_ids LIKE ? AND status = ?", `%"`+tagID+`"%`, StatusActive).
		Preload("Variations", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Order("created_at desc, id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

func (r *Repo) listByColumn(ctx context.Context, column, id string, limit, offset int) ([]Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 24
	}
	var items []Product
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where(column+" = ? AND status = ?", id, StatusActive).
		Preload("Variations", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Order("created_at desc, id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

type CreateProductInput struct {
	Title          string
	Slug           string
	Description    string
	ProductType    string
	Status         string
	PriceCents     int
	SalePriceCents int
	StockQty       int
	SKU            string
	FeaturedImage  string
	SellerID       string
	CategoryID     *string
	BrandID        *string
	LeadDays       int
	CutoffTime     string
	AttributeIDs   []string
	TagIDs         []string
}

func (r *Repo) CreateProduct(ctx context.Context, in CreateProductInput) (Product, error) {
	p := Product{
		ID:             uuid.NewString(),
		Slug:           in.Slug,
		Title:          in.Title,
		Description:    in.Description,
		ProductType:    in.ProductType,
		Status:         in.Status,
		PriceCents:     in.PriceCents,
		SalePriceCents: in.SalePriceCents,
		StockQty:       in.StockQty,
		SKU:            in.SKU,
		FeaturedImage:  in.FeaturedImage,
		SellerID:       in.SellerID,
		CategoryID:     in.CategoryID,
		BrandID:        in.BrandID,
		LeadDays:       in.LeadDays,
		CutoffTime:     in.CutoffTime,
		AttributeIDs:   EncodeIDs(in.AttributeIDs),
		TagIDs:         EncodeIDs(in.TagIDs),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *Repo) UpdateProduct(ctx context.Context, id string, in CreateProductInput) error {
	return r.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":            in.Title,
			"slug":             in.Slug,
			"description":      in.Description,
			"product_type":     in.ProductType,
			"status":           in.Status,
			"price_cents":      in.PriceCents,
			"sale_price_cents": in.SalePriceCents,
			"stock_qty":        in.StockQty,
			"sku":              in.SKU,
			"featured_image":   in.FeaturedImage,
			"category_id":      in.CategoryID,
			"brand_id":         in.BrandID,
			"lead_days":        in.LeadDays,
			"cutoff_time":      in.CutoffTime,
			"attribute_ids":    EncodeIDs(in.AttributeIDs),
			"tag_ids":          EncodeIDs(in.TagIDs),
			"updated_at":       time.Now(),
		}).Error
}

func (r *Repo) DeleteProduct(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&Variation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Product{}, "id = ?", id).Error
	})
}

func (r *Repo) AddVariation(ctx context.Context, productID string, termIDs []string, priceCents, salePriceCents, stockQty int, sku, imageURL string) (Variation, error) {
	v := Variation{
		ID:             uuid.NewString(),
		ProductID:      productID,
		TermIDs:        EncodeIDs(termIDs),
		PriceCents:     priceCents,
		SalePriceCents: salePriceCents,
		StockQty:       stockQty,
		SKU:            sku,
		ImageURL:       imageURL,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		return Variation{}, err
	}
	return v, nil
}

func (r *Repo) UpdateVariation(ctx context.Context, productID, variationID string, termIDs []string, priceCents, salePriceCents, stockQty int, sku, imageURL string) error {
	return r.db.WithContext(ctx).Model(&Variation{}).
		Where("id = ? AND product_id = ?", variationID, productID).
		Updates(map[string]any{
			"term_ids":         EncodeIDs(termIDs),
			"price_cents":      priceCents,
			"sale_price_cents": salePriceCents,
			"stock_qty":        stockQty,
			"sku":              sku,
			"image_url":        imageURL,
			"updated_at":       time.Now(),
		}).Error
}

func (r *Repo) DeleteVariation(ctx context.Context, productID, variationID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", variationID, productID).
		Delete(&Variation{}).Error
}

func (r *Repo) AddImage(ctx context.Context, productID, storageKey, url string, position int) (Image, error) {
	im := Image{
		ID:         uuid.NewString(),
		ProductID:  productID,
		StorageKey: storageKey,
		URL:        url,
		Position:   position,
		CreatedAt:  time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&im).Error; err != nil {
		return Image{}, err
	}
	return im, nil
}

func (r *Repo) GetImage(ctx context.Context, productID, imageID string) (Image, error) {
	var im Image
	err := r.db.WithContext(ctx).First(&im, "id = ? AND product_id = ?", imageID, productID).Error
	return im, err
}

func (r *Repo) DeleteImage(ctx context.Context, productID, imageID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", imageID, productID).
		Delete(&Image{}).Error
}

// IsDuplicateKey reports a MySQL unique-constraint violation (slug, sku).
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
