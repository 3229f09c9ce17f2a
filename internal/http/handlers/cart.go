package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"esitemart.com/app/internal/cart"
	"esitemart.com/app/internal/catalog"
	"esitemart.com/app/internal/http/cartcookie"
	"esitemart.com/app/internal/http/middleware"
	"esitemart.com/app/internal/shared/apperr"
	"esitemart.com/app/pkg/view"
)

// CartHandler serves the cart for both signed-in users (server cart
// keyed by user id) and guests (server cart keyed by a signed cookie).
type CartHandler struct {
	svc        *cart.Service
	repo       *cart.Repo
	products   *catalog.Repo
	categories *catalog.TaxonRepo[catalog.Category, *catalog.Category]
	brands     *catalog.TaxonRepo[catalog.Brand, *catalog.Brand]
	cookie     *cartcookie.Codec
	currency   string
}

func NewCartHandler(db *gorm.DB, cookie *cartcookie.Codec, currency string) *CartHandler {
	return &CartHandler{
		svc:        cart.NewService(db),
		repo:       cart.NewRepo(db),
		products:   catalog.NewRepo(db),
		categories: catalog.NewCategoryRepo(db),
		brands:     catalog.NewBrandRepo(db),
		cookie:     cookie,
		currency:   currency,
	}
}

// resolveCartID finds the caller's open cart. With create=true a guest
// gets a fresh server cart and cookie on the spot.
func (h *CartHandler) resolveCartID(c *gin.Context, create bool) (string, bool) {
	if u, ok := middleware.CurrentUser(c); ok {
		cc, err := h.repo.GetOrCreateUserCart(c.Request.Context(), u.ID)
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return "", false
		}
		return cc.ID, true
	}

	if id, ok := h.cookie.GetCartID(c); ok {
		// the row may be gone (ordered, pruned); fall through to create
		if cc, err := h.repo.Get(c.Request.Context(), id); err == nil && cc.Status == cart.StatusOpen {
			return cc.ID, true
		}
		h.cookie.Clear(c)
	}

	if !create {
		return "", true
	}
	cc, err := h.repo.CreateGuestCart(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return "", false
	}
	h.cookie.Set(c, cc.ID)
	return cc.ID, true
}

func (h *CartHandler) Get(c *gin.Context) {
	cartID, ok := h.resolveCartID(c, false)
	if !ok {
		return
	}
	if cartID == "" {
		c.JSON(http.StatusOK, gin.H{"cart": view.NewCartView(cart.Cart{}, h.currency)})
		return
	}
	cc, err := h.repo.Get(c.Request.Context(), cartID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": view.NewCartView(cc, h.currency)})
}

type addToCartRequest struct {
	ProductID     string            `json:"productId" binding:"required"`
	Quantity      int               `json:"quantity" binding:"required"`
	SelectedTerms map[string]string `json:"selectedTerms"`
}

func (h *CartHandler) Add(c *gin.Context) {
	var req addToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	p, err := h.products.Get(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Product not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if p.Status != catalog.StatusActive {
		middleware.Fail(c, apperr.NotFoundErr("Product not found."))
		return
	}

	line, err := h.buildLine(c, p, req.SelectedTerms)
	if err != nil {
		if errors.Is(err, catalog.ErrIncompleteSelection) {
			middleware.Fail(c, apperr.InvalidErr("Please choose an option for every attribute.", nil))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	cartID, ok := h.resolveCartID(c, true)
	if !ok {
		return
	}

	items, err := h.svc.Add(ctx, cartID, line, req.Quantity)
	if err != nil {
		failCartErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": view.NewCartView(cart.Cart{ID: cartID, Items: items}, h.currency)})
}

// buildLine snapshots the product (or matched variation) into a cart
// line. Price and stock are resolved here once; the line keeps them
// until checkout re-verifies stock.
func (h *CartHandler) buildLine(c *gin.Context, p catalog.Product, selected map[string]string) (cart.CartItem, error) {
	ctx := c.Request.Context()

	line := cart.CartItem{
		ProductID:  p.ID,
		Title:      p.Title,
		SKU:        p.SKU,
		ImageURL:   p.FeaturedImage,
		SellerID:   p.SellerID,
		LeadDays:   p.LeadDays,
		CutoffTime: p.CutoffTime,
	}

	if p.ProductType == catalog.TypeVariable {
		v, err := catalog.SelectVariation(p, selected)
		if err != nil {
			return cart.CartItem{}, err
		}
		line.ItemKey = v.ID
		line.VariationID = v.ID
		line.UnitPriceCents = v.ResolvedPriceCents()
		line.StockQty = v.StockQty
		if v.SKU != "" {
			line.SKU = v.SKU
		}
		if v.ImageURL != "" {
			line.ImageURL = v.ImageURL
		}
		if b, err := json.Marshal(selected); err == nil {
			line.SelectedTerms = datatypes.JSON(b)
		}
	} else {
		line.ItemKey = p.ID
		line.UnitPriceCents = catalog.ResolvePrice(p.PriceCents, p.SalePriceCents)
		line.StockQty = p.StockQty
	}

	if p.CategoryID != nil {
		if cat, err := h.categories.Get(ctx, *p.CategoryID); err == nil {
			line.CategoryName = cat.Name
		}
	}
	if p.BrandID != nil {
		if b, err := h.brands.Get(ctx, *p.BrandID); err == nil {
			line.BrandName = b.Name
		}
	}
	return line, nil
}

type updateQtyRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req updateQtyRequest
	if !bindJSON(c, &req) {
		return
	}

	cartID, ok := h.resolveCartID(c, false)
	if !ok {
		return
	}
	if cartID == "" {
		middleware.Fail(c, apperr.NotFoundErr("Your cart is empty."))
		return
	}

	items, err := h.svc.UpdateQuantity(c.Request.Context(), cartID, c.Param("itemKey"), req.Quantity)
	if err != nil {
		failCartErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": view.NewCartView(cart.Cart{ID: cartID, Items: items}, h.currency)})
}

func (h *CartHandler) Remove(c *gin.Context) {
	cartID, ok := h.resolveCartID(c, false)
	if !ok {
		return
	}
	if cartID == "" {
		c.JSON(http.StatusOK, gin.H{"cart": view.NewCartView(cart.Cart{}, h.currency)})
		return
	}

	items, err := h.svc.Remove(c.Request.Context(), cartID, c.Param("itemKey"))
	if err != nil {
		failCartErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": view.NewCartView(cart.Cart{ID: cartID, Items: items}, h.currency)})
}

func failCartErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrOutOfStock):
		middleware.Fail(c, apperr.ConflictErr("This item is out of stock."))
	case errors.Is(err, cart.ErrStockExceeded):
		middleware.Fail(c, apperr.ConflictErr("Not enough stock for the requested quantity."))
	case errors.Is(err, cart.ErrInvalidQuantity):
		middleware.Fail(c, apperr.InvalidErr("Quantity must be at least 1.", nil))
	case errors.Is(err, cart.ErrLineNotFound):
		middleware.Fail(c, apperr.NotFoundErr("This item is not in your cart."))
	default:
		middleware.Fail(c, apperr.Wrap(err))
	}
}
