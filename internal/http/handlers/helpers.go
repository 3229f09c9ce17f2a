package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"esitemart.com/app/internal/http/middleware"
	"esitemart.com/app/internal/http/validation"
	"esitemart.com/app/internal/shared/apperr"
)

func intQuery(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// bindJSON binds and validates the request body; on failure it pushes
// an invalid error with per-field messages and reports false.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fields := validation.FromBindError(err, dst)
		middleware.Fail(c, apperr.InvalidErr("Please check the highlighted fields.", fields))
		return false
	}
	return true
}

func mustUser(c *gin.Context) (middleware.ContextUser, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Please sign in."))
		return middleware.ContextUser{}, false
	}
	return u, true
}
