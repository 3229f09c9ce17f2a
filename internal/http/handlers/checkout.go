package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"esitemart.com/app/internal/cart"
	"esitemart.com/app/internal/checkout"
	"esitemart.com/app/internal/http/cartcookie"
	"esitemart.com/app/internal/http/middleware"
	"esitemart.com/app/internal/mailer"
	"esitemart.com/app/internal/orders"
	"esitemart.com/app/internal/shared/apperr"
	"esitemart.com/app/pkg/view"
)

type CheckoutHandler struct {
	cartRepo   *cart.Repo
	orders     *orders.Service
	ordersRepo *orders.Repo
	mail       mailer.Service
	mailFrom   string
	cookie     *cartcookie.Codec
	currency   string
}

func NewCheckoutHandler(db *gorm.DB, mail mailer.Service, mailFrom string, cookie *cartcookie.Codec, currency string) *CheckoutHandler {
	return &CheckoutHandler{
		cartRepo:   cart.NewRepo(db),
		orders:     orders.NewService(db),
		ordersRepo: orders.NewRepo(db),
		mail:       mail,
		mailFrom:   mailFrom,
		cookie:     cookie,
		currency:   currency,
	}
}

type checkoutRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=191"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required,min=7,max=20"`

	Address string `json:"address" binding:"required,min=5,max=512"`
	City    string `json:"city" binding:"required,max=100"`
	State   string `json:"state" binding:"required,max=100"`
	Pincode string `json:"pincode" binding:"required,min=4,max=10"`

	// IdempotencyKey dedupes double submits; clients generate one per
	// checkout attempt and reuse it on retry.
	IdempotencyKey string `json:"idempotencyKey" binding:"omitempty,max=64"`
}

func (r checkoutRequest) contact() checkout.Contact {
	return checkout.Contact{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

func (r checkoutRequest) shipping() checkout.ShippingAddress {
	return checkout.ShippingAddress{Address: r.Address, City: r.City, State: r.State, Pincode: r.Pincode}
}

// PlaceCOD places a cash-on-delivery order from the caller's cart.
func (h *CheckoutHandler) PlaceCOD(c *gin.Context) {
	var req checkoutRequest
	if !bindJSON(c, &req) {
		return
	}

	cartID, items, ok := h.cartLines(c)
	if !ok {
		return
	}
	if len(items) == 0 {
		h.replayOrEmpty(c, req.IdempotencyKey)
		return
	}

	payload := checkout.BuildOrderPayload(items, req.contact(), req.shipping(), time.Now())

	var userID *string
	if u, okU := middleware.CurrentUser(c); okU {
		userID = &u.ID
	}

	res, err := h.orders.CreateFromCart(c.Request.Context(), orders.CreateFromCartInput{
		CartID:         cartID,
		UserID:         userID,
		Payload:        payload,
		PaymentMethod:  orders.PaymentCOD,
		PaymentStatus:  orders.PaymentUnpaid,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		failCheckoutErr(c, err)
		return
	}

	if userID == nil {
		h.cookie.Clear(c)
	}
	if !res.AlreadyPlaced {
		h.sendConfirmation(c.Request.Context(), req.Name, req.Email, res.OrderID, payload.TotalCents)
	}

	c.JSON(http.StatusCreated, gin.H{
		"orderId":       res.OrderID,
		"alreadyPlaced": res.AlreadyPlaced,
	})
}

// cartLines resolves the caller's cart. ok=false means an internal
// error was already pushed; an empty slice just means an empty (or
// already ordered) cart.
func (h *CheckoutHandler) cartLines(c *gin.Context) (string, []cart.CartItem, bool) {
	var cartID string
	if u, ok := middleware.CurrentUser(c); ok {
		cc, err := h.cartRepo.GetOrCreateUserCart(c.Request.Context(), u.ID)
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return "", nil, false
		}
		cartID = cc.ID
	} else if id, ok := h.cookie.GetCartID(c); ok {
		cartID = id
	}

	if cartID == "" {
		return "", nil, true
	}
	items, err := h.cartRepo.Items(c.Request.Context(), cartID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return "", nil, false
	}
	return cartID, items, true
}

// replayOrEmpty handles a submit against an empty cart: a retry whose
// first attempt already succeeded gets its order back, anything else is
// a plain empty-cart rejection.
func (h *CheckoutHandler) replayOrEmpty(c *gin.Context, idempotencyKey string) {
	if idempotencyKey != "" {
		if o, err := h.ordersRepo.GetByIdempotencyKey(c.Request.Context(), idempotencyKey); err == nil {
			c.JSON(http.StatusCreated, gin.H{"orderId": o.ID, "alreadyPlaced": true})
			return
		}
	}
	middleware.Fail(c, apperr.InvalidErr("Your cart is empty.", nil))
}

func (h *CheckoutHandler) sendConfirmation(ctx context.Context, name, email, orderID string, totalCents int) {
	e := mailer.Email{
		FromName: "esitemart",
		From:     h.mailFrom,
		To:       []string{email},
		Subject:  "Your order is confirmed",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nThanks for your order %s.\nOrder total: %s\n\nWe will email you again when it ships.\n",
			name, orderID, view.MoneyFromCents(totalCents, h.currency)),
	}
	// fire and forget; the order is already placed
	go func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		_ = h.mail.Send(sctx, e)
	}()
}

func failCheckoutErr(c *gin.Context, err error) {
	var oos *checkout.OutOfStockError
	switch {
	case errors.As(err, &oos):
		fields := make(map[string]string, len(oos.Items))
		for _, it := range oos.Items {
			fields[it.ItemID] = fmt.Sprintf("only %d left", it.Available)
		}
		middleware.Fail(c, apperr.InvalidErr("Some items are no longer available in the requested quantity.", fields))
	case errors.Is(err, orders.ErrCartEmpty):
		middleware.Fail(c, apperr.InvalidErr("Your cart is empty.", nil))
	default:
		middleware.Fail(c, apperr.Wrap(err))
	}
}
