package handlers

import (
	"errors"
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
	"esitemart.com/app/internal/payments"
	"esitemart.com/app/internal/shared/apperr"
)

// PaymentsHandler runs the hosted-gateway flow: the client asks for a
// gateway order, pays in the widget, then posts the signed callback
// here. Only a verified signature places the order.
type PaymentsHandler struct {
	payments *payments.Service
	checkout *CheckoutHandler
	orders   *orders.Service
	keyID    string
}

func NewPaymentsHandler(db *gorm.DB, ps *payments.Service, mail mailer.Service, mailFrom string, cookie *cartcookie.Codec, currency, keyID string) *PaymentsHandler {
	return &PaymentsHandler{
		payments: ps,
		checkout: NewCheckoutHandler(db, mail, mailFrom, cookie, currency),
		orders:   orders.NewService(db),
		keyID:    keyID,
	}
}

// CreateGatewayOrder opens a gateway order for the cart total.
func (h *PaymentsHandler) CreateGatewayOrder(c *gin.Context) {
	cartID, items, ok := h.checkout.cartLines(c)
	if !ok {
		return
	}
	if len(items) == 0 {
		middleware.Fail(c, apperr.InvalidErr("Your cart is empty.", nil))
		return
	}

	po, err := h.payments.CreateGatewayOrder(c.Request.Context(), cart.Total(items), cartID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"orderRef":    po.Ref,
		"amountCents": po.AmountCents,
		"currency":    po.Currency,
		"keyId":       h.keyID,
	})
}

type verifyRequest struct {
	checkoutRequest

	OrderRef   string `json:"orderRef" binding:"required,max=128"`
	PaymentRef string `json:"paymentRef" binding:"required,max=128"`
	Signature  string `json:"signature" binding:"required,max=256"`
}

// VerifyAndPlace checks the gateway signature and, only on success,
// places the order as paid and records the payment.
func (h *PaymentsHandler) VerifyAndPlace(c *gin.Context) {
	var req verifyRequest
	if !bindJSON(c, &req) {
		return
	}

	cb := payments.Callback{
		OrderRef:   req.OrderRef,
		PaymentRef: req.PaymentRef,
		Signature:  req.Signature,
	}
	if err := h.payments.Verify(cb); err != nil {
		if errors.Is(err, payments.ErrBadSignature) {
			middleware.Fail(c, apperr.UnauthorizedErr("Payment could not be verified."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	idemKey := req.IdempotencyKey
	if idemKey == "" {
		// the payment ref is unique per payment; reuse it as the guard
		idemKey = "pay:" + req.PaymentRef
	}

	cartID, items, ok := h.checkout.cartLines(c)
	if !ok {
		return
	}
	if len(items) == 0 {
		h.checkout.replayOrEmpty(c, idemKey)
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
		PaymentMethod:  orders.PaymentGateway,
		PaymentStatus:  orders.PaymentPaid,
		IdempotencyKey: idemKey,
	})
	if err != nil {
		failCheckoutErr(c, err)
		return
	}

	if !res.AlreadyPlaced {
		if err := h.payments.Record(c.Request.Context(), res.OrderID, cb, payload.TotalCents); err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		h.checkout.sendConfirmation(c.Request.Context(), req.Name, req.Email, res.OrderID, payload.TotalCents)
	}
	if userID == nil {
		h.checkout.cookie.Clear(c)
	}

	c.JSON(http.StatusCreated, gin.H{
		"orderId":       res.OrderID,
		"alreadyPlaced": res.AlreadyPlaced,
	})
}
