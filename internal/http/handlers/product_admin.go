package handlers

import (
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

// ProductAdminHandler is the write side of the catalog. Every mutation
// flushes the product cache.
type ProductAdminHandler struct {
	repo     *catalog.Repo
	cache    *catalog.Cache
	currency string
}

func NewProductAdminHandler(db *gorm.DB, cache *catalog.Cache, currency string) *ProductAdminHandler {
	return &ProductAdminHandler{repo: catalog.NewRepo(db), cache: cache, currency: currency}
}

type productRequest struct {
	Title          string   `json:"title" binding:"required,min=2,max=255"`
	Slug           string   `json:"slug" binding:"omitempty,max=191"`
	Description    string   `json:"description" binding:"omitempty"`
	ProductType    string   `json:"productType" binding:"required,oneof=simple variable"`
	Status         string   `json:"status" binding:"required,oneof=active draft"`
	PriceCents     int      `json:"priceCents" binding:"gte=0"`
	SalePriceCents int      `json:"salePriceCents" binding:"gte=0"`
	StockQty       int      `json:"stockQty" binding:"gte=0"`
	SKU            string   `json:"sku" binding:"omitempty,max=64"`
	FeaturedImage  string   `json:"featuredImage" binding:"omitempty,max=512"`
	CategoryID     *string  `json:"categoryId"`
	BrandID        *string  `json:"brandId"`
	LeadDays       int      `json:"leadDays" binding:"gte=0"`
	CutoffTime     string   `json:"cutoffTime" binding:"omitempty,len=5"`
	AttributeIDs   []string `json:"attributeIds"`
	TagIDs         []string `json:"tagIds"`
}

func (r productRequest) toInput(sellerID string) catalog.CreateProductInput {
	s := strings.TrimSpace(r.Slug)
	if s == "" {
		s = slug.FromName(r.Title)
	}
	return catalog.CreateProductInput{
		Title:          strings.TrimSpace(r.Title),
		Slug:           s,
		Description:    r.Description,
		ProductType:    r.ProductType,
		Status:         r.Status,
		PriceCents:     r.PriceCents,
		SalePriceCents: r.SalePriceCents,
		StockQty:       r.StockQty,
		SKU:            r.SKU,
		FeaturedImage:  r.FeaturedImage,
		SellerID:       sellerID,
		CategoryID:     r.CategoryID,
		BrandID:        r.BrandID,
		LeadDays:       r.LeadDays,
		CutoffTime:     r.CutoffTime,
		AttributeIDs:   r.AttributeIDs,
		TagIDs:         r.TagIDs,
	}
}

func (h *ProductAdminHandler) Create(c *gin.Context) {
	u, ok := mustUser(c)
	if !ok {
		return
	}
	var req productRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.repo.CreateProduct(c.Request.Context(), req.toInput(u.ID))
	if err != nil {
		if catalog.IsDuplicateKey(err) {
			middleware.Fail(c, apperr.ConflictErr("A product with this slug already exists."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.cache.Flush(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{"product": view.NewProductDetail(p, h.currency)})
}

func (h *ProductAdminHandler) Update(c *gin.Context) {
	u, ok := mustUser(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if _, err := h.repo.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Product not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	var req productRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.repo.UpdateProduct(c.Request.Context(), id, req.toInput(u.ID)); err != nil {
		if catalog.IsDuplicateKey(err) {
			middleware.Fail(c, apperr.ConflictErr("A product with this slug already exists."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.cache.Flush(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ProductAdminHandler) Delete(c *gin.Context) {
	if err := h.repo.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.cache.Flush(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ProductAdminHandler) Get(c *gin.Context) {
	p, err := h.repo.Get(c.Request.Context(), c.Param("id"))
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

type variationRequest struct {
	TermIDs        []string `json:"termIds" binding:"required,min=1"`
	PriceCents     int      `json:"priceCents" binding:"gte=0"`
	SalePriceCents int      `json:"salePriceCents" binding:"gte=0"`
	StockQty       int      `json:"stockQty" binding:"gte=0"`
	SKU            string   `json:"sku" binding:"omitempty,max=64"`
	ImageURL       string   `json:"imageUrl" binding:"omitempty,max=512"`
}

func (h *ProductAdminHandler) AddVariation(c *gin.Context) {
	productID := c.Param("id")
	p, err := h.repo.Get(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Product not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	var req variationRequest
	if !bindJSON(c, &req) {
		return
	}

	// One term per attribute, in the product's attribute order.
	if len(req.TermIDs) != len(p.AttributeOrder()) {
		middleware.Fail(c, apperr.InvalidErr("Variation terms must match the product's attributes.", nil))
		return
	}

	v, err := h.repo.AddVariation(c.Request.Context(), productID,
		req.TermIDs, req.PriceCents, req.SalePriceCents, req.StockQty, req.SKU, req.ImageURL)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.cache.Flush(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{"variation": gin.H{"id": v.ID}})
}

func (h *ProductAdminHandler) UpdateVariation(c *gin.Context) {
	var req variationRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.repo.UpdateVariation(c.Request.Context(), c.Param("id"), c.Param("variationId"),
		req.TermIDs, req.PriceCents, req.SalePriceCents, req.StockQty, req.SKU, req.ImageURL)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.cache.Flush(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ProductAdminHandler) DeleteVariation(c *gin.Context) {
	err := h.repo.DeleteVariation(c.Request.Context(), c.Param("id"), c.Param("variationId"))
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.cache.Flush(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
