package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"esitemart.com/app/internal/http/middleware"
	"esitemart.com/app/internal/shared/apperr"
	"esitemart.com/app/internal/users"
)

type UsersAdminHandler struct {
	approval *users.ApprovalService
}

func NewUsersAdminHandler(approval *users.ApprovalService) *UsersAdminHandler {
	return &UsersAdminHandler{approval: approval}
}

type userRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Approved bool   `json:"approved"`
	Phone    string `json:"phone,omitempty"`
}

func toUserRows(list []users.User) []userRow {
	out := make([]userRow, 0, len(list))
	for _, u := range list {
		out = append(out, userRow{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Role:     u.Role,
			Approved: u.Approved,
			Phone:    u.Phone,
		})
	}
	return out
}

func (h *UsersAdminHandler) List(c *gin.Context) {
	list, err := h.approval.ListUsers(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": toUserRows(list)})
}

func (h *UsersAdminHandler) PendingClients(c *gin.Context) {
	list, err := h.approval.ListPendingClients(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": toUserRows(list)})
}

func (h *UsersAdminHandler) Approve(c *gin.Context) {
	if err := h.approval.Approve(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("User not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *UsersAdminHandler) Reject(c *gin.Context) {
	if err := h.approval.Reject(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("User not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
