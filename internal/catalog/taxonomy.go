package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Taxon is the shared shape of the three catalog taxonomies. Categories,
// brands and tags used to be three copy-pasted repos; one parameterized
// repo covers all of them.
type Taxon struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	Name      string    `gorm:"type:varchar(191);not null"`
	Slug      string    `gorm:"type:varchar(191);not null;uniqueIndex"`
	ImageURL  string    `gorm:"type:varchar(512)"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

// TaxonOf exposes the embedded shape to callers outside the package.
func (t Taxon) TaxonOf() Taxon { return t }

type Category struct{ Taxon }

func (Category) TableName() string { return "categories" }

type Brand struct{ Taxon }

func (Brand) TableName() string { return "brands" }

type Tag struct{ Taxon }

func (Tag) TableName() string { return "tags" }

type taxonModel interface {
	taxon() *Taxon
}

func (c *Category) taxon() *Taxon { return &c.Taxon }
func (b *Brand) taxon() *Taxon    { return &b.Taxon }
func (t *Tag) taxon() *Taxon      { return &t.Taxon }

// TaxonRepo is a generic CRUD repo over one taxonomy table.
type TaxonRepo[T any, PT interface {
	taxonModel
	*T
}] struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *TaxonRepo[Category, *Category] {
	return &TaxonRepo[Category, *Category]{db: db}
}

func NewBrandRepo(db *gorm.DB) *TaxonRepo[Brand, *Brand] {
	return &TaxonRepo[Brand, *Brand]{db: db}
}

func NewTagRepo(db *gorm.DB) *TaxonRepo[Tag, *Tag] {
	return &TaxonRepo[Tag, *Tag]{db: db}
}

func (r *TaxonRepo[T, PT]) List(ctx context.Context) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error
	return items, err
}

func (r *TaxonRepo[T, PT]) GetBySlug(ctx context.Context, slug string) (T, error) {
	var m T
	err := r.db.WithContext(ctx).First(&m, "slug = ?", slug).Error
	return m, err
}

func (r *TaxonRepo[T, PT]) Get(ctx context.Context, id string) (T, error) {
	var m T
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return m, err
}

func (r *TaxonRepo[T, PT]) Create(ctx context.Context, name, slug, imageURL string) (T, error) {
	var m T
	tx := PT(&m).taxon()
	tx.ID = uuid.NewString()
	tx.Name = name
	tx.Slug = slug
	tx.ImageURL = imageURL
	tx.CreatedAt = time.Now()
	tx.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		var zero T
		return zero, err
	}
	return m, nil
}

func (r *TaxonRepo[T, PT]) Update(ctx context.Context, id, name, slug, imageURL string) error {
	var m T
	return r.db.WithContext(ctx).Model(&m).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":       name,
			"slug":       slug,
			"image_url":  imageURL,
			"updated_at": time.Now(),
		}).Error
}

func (r *TaxonRepo[T, PT]) Delete(ctx context.Context, id string) error {
	var m T
	return r.db.WithContext(ctx).Delete(&m, "id = ?", id).Error
}
