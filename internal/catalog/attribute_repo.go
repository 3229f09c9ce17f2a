package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttributeRepo struct{ db *gorm.DB }

func NewAttributeRepo(db *gorm.DB) *AttributeRepo { return &AttributeRepo{db: db} }

func (r *AttributeRepo) List(ctx context.Context) ([]Attribute, error) {
	var items []Attribute
	err := r.db.WithContext(ctx).
		Preload("Terms", func(db *gorm.DB) *gorm.DB { return db.Order("name asc") }).
		Order("name asc").
		Find(&items).Error
	return items, err
}

func (r *AttributeRepo) Get(ctx context.Context, id string) (Attribute, error) {
	var a Attribute
	err := r.db.WithContext(ctx).
		Preload("Terms", func(db *gorm.DB) *gorm.DB { return db.Order("name asc") }).
		First(&a, "id = ?", id).Error
	return a, err
}

func (r *AttributeRepo) Create(ctx context.Context, name, slug string) (Attribute, error) {
	a := Attribute{
		ID:        uuid.NewString(),
		Name:      name,
		Slug:      slug,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return Attribute{}, err
	}
	return a, nil
}

func (r *AttributeRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attribute_id = ?", id).Delete(&Term{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Attribute{}, "id = ?", id).Error
	})
}

func (r *AttributeRepo) AddTerm(ctx context.Context, attributeID, name, slug string) (Term, error) {
	t := Term{
		ID:          uuid.NewString(),
		AttributeID: attributeID,
		Name:        name,
		Slug:        slug,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return Term{}, err
	}
	return t, nil
}

func (r *AttributeRepo) ListTerms(ctx context.Context, attributeID string) ([]Term, error) {
	var terms []Term
	err := r.db.WithContext(ctx).
		Where("attribute_id = ?", attributeID).
		Order("name asc").
		Find(&terms).Error
	return terms, err
}

func (r *AttributeRepo) DeleteTerm(ctx context.Context, attributeID, termID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND attribute_id = ?", termID, attributeID).
		Delete(&Term{}).Error
}
