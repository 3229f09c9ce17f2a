package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"esitemart.com/app/internal/http/middleware"
	"esitemart.com/app/internal/orders"
	"esitemart.com/app/internal/shared/apperr"
	"esitemart.com/app/pkg/view"
)

type OrdersAdminHandler struct {
	svc      *orders.AdminService
	repo     *orders.Repo
	currency string
}

func NewOrdersAdminHandler(db *gorm.DB, currency string) *OrdersAdminHandler {
	return &OrdersAdminHandler{svc: orders.NewAdminService(db), repo: orders.NewRepo(db), currency: currency}
}

func (h *OrdersAdminHandler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context(), orders.ListParams{
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

func (h *OrdersAdminHandler) Detail(c *gin.Context) {
	o, items, err := h.repo.GetWithItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Order not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": view.NewOrderDetail(o, items, h.currency)})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}

func (h *OrdersAdminHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			middleware.Fail(c, apperr.NotFoundErr("Order not found."))
		case errors.Is(err, orders.ErrBadTransition):
			middleware.Fail(c, apperr.ConflictErr("This status change is not allowed."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
