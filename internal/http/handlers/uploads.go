package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"esitemart.com/app/internal/catalog"
	"esitemart.com/app/internal/http/middleware"
	"esitemart.com/app/internal/shared/apperr"
	"esitemart.com/app/internal/storage"
)

const maxImageBytes = 8 << 20

type UploadsHandler struct {
	repo  *catalog.Repo
	store storage.Storage
	cache *catalog.Cache
}

func NewUploadsHandler(db *gorm.DB, store storage.Storage, cache *catalog.Cache) *UploadsHandler {
	return &UploadsHandler{repo: catalog.NewRepo(db), store: store, cache: cache}
}

// AddImage stores an uploaded product image and appends it to the
// product's gallery.
func (h *UploadsHandler) AddImage(c *gin.Context) {
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

	fh, err := c.FormFile("image")
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("An image file is required.", map[string]string{"image": "required"}))
		return
	}
	if fh.Size > maxImageBytes {
		middleware.Fail(c, apperr.InvalidErr("Image is too large (8 MB max).", map[string]string{"image": "too large"}))
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	res, err := h.store.Put(c.Request.Context(), f, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	im, err := h.repo.AddImage(c.Request.Context(), productID, res.Key, res.URL, len(p.Images))
	if err != nil {
		_ = h.store.Delete(c.Request.Context(), res.Key)
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.cache.Flush(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{"image": gin.H{"id": im.ID, "url": im.URL, "position": im.Position}})
}

func (h *UploadsHandler) DeleteImage(c *gin.Context) {
	productID, imageID := c.Param("id"), c.Param("imageId")

	im, err := h.repo.GetImage(c.Request.Context(), productID, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Image not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if err := h.repo.DeleteImage(c.Request.Context(), productID, imageID); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	_ = h.store.Delete(c.Request.Context(), im.StorageKey)
	h.cache.Flush(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
