package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"esitemart.com/app/internal/catalog"
	"esitemart.com/app/internal/http/middleware"
	"esitemart.com/app/internal/shared/apperr"
	"esitemart.com/app/internal/shared/slug"
	"esitemart.com/app/pkg/view"
)

// taxonRecord lets one handler cover categories, brands and tags.
type taxonRecord interface {
	TaxonOf() catalog.Taxon
}

// TaxonomyAdminHandler is the admin CRUD surface for one taxonomy
// table; the router mounts three instances.
type TaxonomyAdminHandler[T taxonRecord] struct {
	repo  taxonCRUD[T]
	cache *catalog.Cache
	label string // "category", "brand", "tag" for error messages
}

type taxonCRUD[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, name, slugV, imageURL string) (T, error)
	Update(ctx context.Context, id, name, slugV, imageURL string) error
	Delete(ctx context.Context, id string) error
}

func NewCategoryAdminHandler(db *gorm.DB, cache *catalog.Cache) *TaxonomyAdminHandler[catalog.Category] {
	return &TaxonomyAdminHandler[catalog.Category]{repo: catalog.NewCategoryRepo(db), cache: cache, label: "category"}
}

func NewBrandAdminHandler(db *gorm.DB, cache *catalog.Cache) *TaxonomyAdminHandler[catalog.Brand] {
	return &TaxonomyAdminHandler[catalog.Brand]{repo: catalog.NewBrandRepo(db), cache: cache, label: "brand"}
}

func NewTagAdminHandler(db *gorm.DB, cache *catalog.Cache) *TaxonomyAdminHandler[catalog.Tag] {
	return &TaxonomyAdminHandler[catalog.Tag]{repo: catalog.NewTagRepo(db), cache: cache, label: "tag"}
}

type taxonRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=191"`
	Slug     string `json:"slug" binding:"omitempty,max=191"`
	ImageURL string `json:"imageUrl" binding:"omitempty,max=512"`
}

func (h *TaxonomyAdminHandler[T]) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	out := make([]view.TaxonView, 0, len(list))
	for _, t := range list {
		out = append(out, view.NewTaxonView(t.TaxonOf()))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h *TaxonomyAdminHandler[T]) Create(c *gin.Context) {
	var req taxonRequest
	if !bindJSON(c, &req) {
		return
	}
	s := strings.TrimSpace(req.Slug)
	if s == "" {
		s = slug.FromName(req.Name)
	}
	t, err := h.repo.Create(c.Request.Context(), strings.TrimSpace(req.Name), s, req.ImageURL)
	if err != nil {
		if catalog.IsDuplicateKey(err) {
			middleware.Fail(c, apperr.ConflictErr("A "+h.label+" with this slug already exists."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.cache.Flush(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"item": view.NewTaxonView(t.TaxonOf())})
}

func (h *TaxonomyAdminHandler[T]) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.repo.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	var req taxonRequest
	if !bindJSON(c, &req) {
		return
	}
	s := strings.TrimSpace(req.Slug)
	if s == "" {
		s = slug.FromName(req.Name)
	}
	if err := h.repo.Update(c.Request.Context(), id, strings.TrimSpace(req.Name), s, req.ImageURL); err != nil {
		if catalog.IsDuplicateKey(err) {
			middleware.Fail(c, apperr.ConflictErr("A "+h.label+" with this slug already exists."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.cache.Flush(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *TaxonomyAdminHandler[T]) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.cache.Flush(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
