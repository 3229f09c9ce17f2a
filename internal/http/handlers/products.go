package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"esitemart.com/app/internal/catalog"
	"esitemart.com/app/internal/http/middleware"
	"esitemart.com/app/internal/shared/apperr"
	"esitemart.com/app/pkg/view"
)

// CatalogHandler serves the public read side of the catalog. List
// endpoints go through the redis cache when one is configured.
type CatalogHandler struct {
	repo       *catalog.Repo
	categories *catalog.TaxonRepo[catalog.Category, *catalog.Category]
	brands     *catalog.TaxonRepo[catalog.Brand, *catalog.Brand]
	tags       *catalog.TaxonRepo[catalog.Tag, *catalog.Tag]
	attrs      *catalog.AttributeRepo
	cache      *catalog.Cache
	currency   string
}

func NewCatalogHandler(db *gorm.DB, cache *catalog.Cache, currency string) *CatalogHandler {
	return &CatalogHandler{
		repo:       catalog.NewRepo(db),
		categories: catalog.NewCategoryRepo(db),
		brands:     catalog.NewBrandRepo(db),
		tags:       catalog.NewTagRepo(db),
		attrs:      catalog.NewAttributeRepo(db),
		cache:      cache,
		currency:   currency,
	}
}

func (h *CatalogHandler) List(c *gin.Context) {
	limit := intQuery(c, "limit", 24)
	offset := intQuery(c, "offset", 0)

	key := catalog.ListKey("all", limit, offset)
	var items []catalog.Product
	if !h.cache.Get(c.Request.Context(), key, &items) {
		var err error
		items, err = h.repo.ListActive(c.Request.Context(), limit, offset)
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		h.cache.Set(c.Request.Context(), key, items)
	}

	c.JSON(http.StatusOK, gin.H{"products": view.NewProductSummaries(items, h.currency)})
}

func (h *CatalogHandler) Detail(c *gin.Context) {
	p, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Product not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": view.NewProductDetail(p, h.currency)})
}

func (h *CatalogHandler) ByCategory(c *gin.Context) {
	cat, err := h.categories.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Category not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	limit := intQuery(c, "limit", 24)
	offset := intQuery(c, "offset", 0)

	key := catalog.ListKey("category:"+cat.ID, limit, offset)
	var items []catalog.Product
	if !h.cache.Get(c.Request.Context(), key, &items) {
		items, err = h.repo.ListByCategory(c.Request.Context(), cat.ID, limit, offset)
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		h.cache.Set(c.Request.Context(), key, items)
	}

	c.JSON(http.StatusOK, gin.H{
		"category": view.NewTaxonView(cat.TaxonOf()),
		"products": view.NewProductSummaries(items, h.currency),
	})
}

func (h *CatalogHandler) ByBrand(c *gin.Context) {
	b, err := h.brands.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Brand not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	limit := intQuery(c, "limit", 24)
	offset := intQuery(c, "offset", 0)

	key := catalog.ListKey("brand:"+b.ID, limit, offset)
	var items []catalog.Product
	if !h.cache.Get(c.Request.Context(), key, &items) {
		items, err = h.repo.ListByBrand(c.Request.Context(), b.ID, limit, offset)
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		h.cache.Set(c.Request.Context(), key, items)
	}

	c.JSON(http.StatusOK, gin.H{
		"brand":    view.NewTaxonView(b.TaxonOf()),
		"products": view.NewProductSummaries(items, h.currency),
	})
}

func (h *CatalogHandler) ByTag(c *gin.Context) {
	t, err := h.tags.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Tag not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	limit := intQuery(c, "limit", 24)
	offset := intQuery(c, "offset", 0)

	key := catalog.ListKey("tag:"+t.ID, limit, offset)
	var items []catalog.Product
	if !h.cache.Get(c.Request.Context(), key, &items) {
		items, err = h.repo.ListByTag(c.Request.Context(), t.ID, limit, offset)
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		h.cache.Set(c.Request.Context(), key, items)
	}

	c.JSON(http.StatusOK, gin.H{
		"tag":      view.NewTaxonView(t.TaxonOf()),
		"products": view.NewProductSummaries(items, h.currency),
	})
}

func (h *CatalogHandler) Categories(c *gin.Context) {
	list, err := h.categories.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	out := make([]view.TaxonView, 0, len(list))
	for _, t := range list {
		out = append(out, view.NewTaxonView(t.TaxonOf()))
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func (h *CatalogHandler) Brands(c *gin.Context) {
	list, err := h.brands.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	out := make([]view.TaxonView, 0, len(list))
	for _, t := range list {
		out = append(out, view.NewTaxonView(t.TaxonOf()))
	}
	c.JSON(http.StatusOK, gin.H{"brands": out})
}

func (h *CatalogHandler) Tags(c *gin.Context) {
	list, err := h.tags.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	out := make([]view.TaxonView, 0, len(list))
	for _, t := range list {
		out = append(out, view.NewTaxonView(t.TaxonOf()))
	}
	c.JSON(http.StatusOK, gin.H{"tags": out})
}

// Attributes returns every attribute with its terms; product pages use
// it to label variation selectors.
func (h *CatalogHandler) Attributes(c *gin.Context) {
	list, err := h.attrs.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"attributes": view.NewAttributeViews(list)})
}
