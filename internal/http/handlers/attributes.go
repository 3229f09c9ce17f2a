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

type AttributeAdminHandler struct {
	repo  *catalog.AttributeRepo
	cache *catalog.Cache
}

func NewAttributeAdminHandler(db *gorm.DB, cache *catalog.Cache) *AttributeAdminHandler {
	return &AttributeAdminHandler{repo: catalog.NewAttributeRepo(db), cache: cache}
}

type attributeRequest struct {
	Name string `json:"name" binding:"required,min=1,max=191"`
	Slug string `json:"slug" binding:"omitempty,max=191"`
}

func (h *AttributeAdminHandler) Create(c *gin.Context) {
	var req attributeRequest
	if !bindJSON(c, &req) {
		return
	}
	s := strings.TrimSpace(req.Slug)
	if s == "" {
		s = slug.FromName(req.Name)
	}
	a, err := h.repo.Create(c.Request.Context(), strings.TrimSpace(req.Name), s)
	if err != nil {
		if catalog.IsDuplicateKey(err) {
			middleware.Fail(c, apperr.ConflictErr("An attribute with this slug already exists."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"attribute": view.NewAttributeView(a)})
}

func (h *AttributeAdminHandler) Get(c *gin.Context) {
	a, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Attribute not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"attribute": view.NewAttributeView(a)})
}

// Delete removes the attribute and its terms. Products referencing it
// keep their stored id lists; variation matching for them simply stops
// resolving until the product is edited.
func (h *AttributeAdminHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.cache.Flush(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AttributeAdminHandler) AddTerm(c *gin.Context) {
	attrID := c.Param("id")
	if _, err := h.repo.Get(c.Request.Context(), attrID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Attribute not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	var req attributeRequest
	if !bindJSON(c, &req) {
		return
	}
	s := strings.TrimSpace(req.Slug)
	if s == "" {
		s = slug.FromName(req.Name)
	}
	t, err := h.repo.AddTerm(c.Request.Context(), attrID, strings.TrimSpace(req.Name), s)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"term": gin.H{"id": t.ID, "name": t.Name, "slug": t.Slug}})
}

func (h *AttributeAdminHandler) DeleteTerm(c *gin.Context) {
	err := h.repo.DeleteTerm(c.Request.Context(), c.Param("id"), c.Param("termId"))
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.cache.Flush(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
