package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"esitemart.com/app/internal/cart"
	"esitemart.com/app/internal/http/cartcookie"
	"esitemart.com/app/internal/http/middleware"
	"esitemart.com/app/internal/shared/apperr"
	"esitemart.com/app/internal/users"
)

type AuthHandler struct {
	users      *users.Service
	cartSvc    *cart.Service
	cartRepo   *cart.Repo
	cartCookie *cartcookie.Codec
	sessions   middleware.SessionCfg
}

func NewAuthHandler(us *users.Service, cs *cart.Service, cr *cart.Repo, cc *cartcookie.Codec, sessions middleware.SessionCfg) *AuthHandler {
	return &AuthHandler{users: us, cartSvc: cs, cartRepo: cr, cartCookie: cc, sessions: sessions}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
	Address  string `json:"address" binding:"omitempty,max=512"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	h.register(c, users.RoleUser)
}

// RegisterClient creates a wholesale account that stays locked until an
// admin approves it.
func (h *AuthHandler) RegisterClient(c *gin.Context) {
	h.register(c, users.RoleClient)
}

func (h *AuthHandler) register(c *gin.Context, role string) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Register(c.Request.Context(), users.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			middleware.Fail(c, apperr.ConflictErr("An account with this email already exists."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       u.ID,
		"email":    u.Email,
		"role":     u.Role,
		"approved": u.Approved,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidCredentials):
			middleware.Fail(c, apperr.UnauthorizedErr("Email or password is incorrect."))
		case errors.Is(err, users.ErrNotApproved):
			middleware.Fail(c, apperr.ForbiddenErr("Your account is awaiting approval."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	sess, err := middleware.CreateSession(h.sessions, u.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.sessions.CookieName, sess.ID, int(h.sessions.TTL.Seconds()), "/", "", h.sessions.Secure, true)

	h.mergeGuestCart(c, u.ID)

	c.JSON(http.StatusOK, gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	})
}

// mergeGuestCart folds a guest-cookie cart into the user's open cart on
// sign-in. Merge failures only cost the guest lines, never the login.
func (h *AuthHandler) mergeGuestCart(c *gin.Context, userID string) {
	guestID, ok := h.cartCookie.GetCartID(c)
	if !ok {
		return
	}
	defer h.cartCookie.Clear(c)

	ctx := c.Request.Context()
	items, err := h.cartRepo.Items(ctx, guestID)
	if err != nil || len(items) == 0 {
		return
	}
	userCart, err := h.cartRepo.GetOrCreateUserCart(ctx, userID)
	if err != nil {
		return
	}
	for _, it := range items {
		// stock rules still apply; lines that no longer fit are dropped
		_, _ = h.cartSvc.Add(ctx, userCart.ID, it, it.Quantity)
	}
	_ = h.cartRepo.Clear(ctx, guestID)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(h.sessions.CookieName); err == nil && sessionID != "" {
		_ = middleware.DeleteSession(h.sessions, sessionID)
	}
	c.SetCookie(h.sessions.CookieName, "", -1, "/", "", h.sessions.Secure, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	cu, ok := mustUser(c)
	if !ok {
		return
	}
	u, err := h.users.Get(c.Request.Context(), cu.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       u.ID,
		"name":     u.Name,
		"email":    u.Email,
		"role":     u.Role,
		"approved": u.Approved,
		"phone":    u.Phone,
		"address":  u.Address,
	})
}

type updateProfileRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Phone   string `json:"phone" binding:"omitempty,max=32"`
	Address string `json:"address" binding:"omitempty,max=512"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	cu, ok := mustUser(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.users.UpdateProfile(c.Request.Context(), cu.ID, users.UpdateProfileInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
