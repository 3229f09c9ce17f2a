package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"esitemart.com/app/internal/http/middleware"
	"esitemart.com/app/internal/orders"
	"esitemart.com/app/internal/shared/apperr"
	"esitemart.com/app/internal/users"
	"esitemart.com/app/pkg/view"
)

type OrdersHandler struct {
	repo     *orders.Repo
	currency string
}

func NewOrdersHandler(db *gorm.DB, currency string) *OrdersHandler {
	return &OrdersHandler{repo: orders.NewRepo(db), currency: currency}
}

func (h *OrdersHandler) ListMine(c *gin.Context) {
	u, ok := mustUser(c)
	if !ok {
		return
	}

	res, err := h.repo.ListByUser(c.Request.Context(), u.ID, u.Email, orders.ListParams{
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "pageSize", 20),
		Status:   c.Query("status"),
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orders": view.NewOrderSummaries(res.Items, h.currency),
		"total":  res.Total,
	})
}

func (h *OrdersHandler) Detail(c *gin.Context) {
	u, ok := mustUser(c)
	if !ok {
		return
	}

	o, items, err := h.repo.GetWithItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Order not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if !canViewOrder(u, o) {
		// hide existence from other users
		middleware.Fail(c, apperr.NotFoundErr("Order not found."))
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": view.NewOrderDetail(o, items, h.currency)})
}

func canViewOrder(u middleware.ContextUser, o orders.Order) bool {
	if u.Role == users.RoleAdmin {
		return true
	}
	if o.UserID != nil {
		return *o.UserID == u.ID
	}
	// guest order claimed by email after signup
	return o.CustomerEmail == u.Email
}
