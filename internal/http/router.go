package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"esitemart.com/app/internal/cart"
	"esitemart.com/app/internal/catalog"
	"esitemart.com/app/internal/http/cartcookie"
	"esitemart.com/app/internal/http/handlers"
	"esitemart.com/app/internal/http/middleware"
	"esitemart.com/app/internal/mailer"
	"esitemart.com/app/internal/payments"
	"esitemart.com/app/internal/storage"
	"esitemart.com/app/internal/users"
)

type RouterConfig struct {
	DB     *gorm.DB
	Logger *slog.Logger

	Cache   *catalog.Cache
	Storage storage.Storage
	Mailer  mailer.Service

	Payments      *payments.Service
	RazorpayKeyID string

	CookieSecret []byte
	SecureCookie bool
	SessionTTL   time.Duration

	MailFrom string
	Currency string
}

// NewRouter wires the middleware chain and the full API surface.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler(cfg.Logger))

	sessions := middleware.SessionCfg{
		DB:         cfg.DB,
		CookieName: "session_id",
		Secure:     cfg.SecureCookie,
		TTL:        cfg.SessionTTL,
	}
	r.Use(middleware.SessionMiddleware(sessions))

	cookie := cartcookie.New(cfg.CookieSecret, "cart_id", cfg.SecureCookie)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	mountAuth(api, cfg, cookie, sessions)
	mountCatalog(api, cfg)
	mountCart(api, cfg, cookie)
	mountCheckout(api, cfg, cookie)
	mountOrders(api, cfg)
	mountAdmin(api, cfg)

	return r
}

func mountAuth(api *gin.RouterGroup, cfg RouterConfig, cookie *cartcookie.Codec, sessions middleware.SessionCfg) {
	h := handlers.NewAuthHandler(
		users.NewService(cfg.DB),
		cart.NewService(cfg.DB), cart.NewRepo(cfg.DB), cookie, sessions,
	)

	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(5, 10))
	auth.POST("/register", h.Register)
	auth.POST("/register-client", h.RegisterClient)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)

	me := api.Group("/me")
	me.Use(middleware.RequireAuth())
	me.GET("", h.Me)
	me.PUT("", h.UpdateProfile)
}

func mountCatalog(api *gin.RouterGroup, cfg RouterConfig) {
	h := handlers.NewCatalogHandler(cfg.DB, cfg.Cache, cfg.Currency)

	api.GET("/products", h.List)
	api.GET("/products/:slug", h.Detail)
	api.GET("/categories", h.Categories)
	api.GET("/categories/:slug/products", h.ByCategory)
	api.GET("/brands", h.Brands)
	api.GET("/brands/:slug/products", h.ByBrand)
	api.GET("/tags", h.Tags)
	api.GET("/tags/:slug/products", h.ByTag)
	api.GET("/attributes", h.Attributes)
}

func mountCart(api *gin.RouterGroup, cfg RouterConfig, cookie *cartcookie.Codec) {
	h := handlers.NewCartHandler(cfg.DB, cookie, cfg.Currency)

	api.GET("/cart", h.Get)
	api.POST("/cart/items", h.Add)
	api.PATCH("/cart/items/:itemKey", h.UpdateQuantity)
	api.DELETE("/cart/items/:itemKey", h.Remove)
}

func mountCheckout(api *gin.RouterGroup, cfg RouterConfig, cookie *cartcookie.Codec) {
	limited := api.Group("/checkout")
	limited.Use(middleware.RateLimit(2, 5))

	cod := handlers.NewCheckoutHandler(cfg.DB, cfg.Mailer, cfg.MailFrom, cookie, cfg.Currency)
	limited.POST("/cod", cod.PlaceCOD)

	if cfg.Payments != nil {
		pay := handlers.NewPaymentsHandler(cfg.DB, cfg.Payments, cfg.Mailer, cfg.MailFrom, cookie, cfg.Currency, cfg.RazorpayKeyID)
		limited.POST("/razorpay/order", pay.CreateGatewayOrder)
		limited.POST("/razorpay/verify", pay.VerifyAndPlace)
	}
}

func mountOrders(api *gin.RouterGroup, cfg RouterConfig) {
	h := handlers.NewOrdersHandler(cfg.DB, cfg.Currency)

	orders := api.Group("/orders")
	orders.Use(middleware.RequireAuth())
	orders.GET("", h.ListMine)
	orders.GET("/:id", h.Detail)
}

func mountAdmin(api *gin.RouterGroup, cfg RouterConfig) {
	admin := api.Group("/admin")
	admin.Use(middleware.RequireRole(users.RoleAdmin))

	products := handlers.NewProductAdminHandler(cfg.DB, cfg.Cache, cfg.Currency)
	admin.POST("/products", products.Create)
	admin.GET("/products/:id", products.Get)
	admin.PUT("/products/:id", products.Update)
	admin.DELETE("/products/:id", products.Delete)
	admin.POST("/products/:id/variations", products.AddVariation)
	admin.PUT("/products/:id/variations/:variationId", products.UpdateVariation)
	admin.DELETE("/products/:id/variations/:variationId", products.DeleteVariation)

	uploads := handlers.NewUploadsHandler(cfg.DB, cfg.Storage, cfg.Cache)
	admin.POST("/products/:id/images", uploads.AddImage)
	admin.DELETE("/products/:id/images/:imageId", uploads.DeleteImage)

	categories := handlers.NewCategoryAdminHandler(cfg.DB, cfg.Cache)
	admin.GET("/categories", categories.List)
	admin.POST("/categories", categories.Create)
	admin.PUT("/categories/:id", categories.Update)
	admin.DELETE("/categories/:id", categories.Delete)

	brands := handlers.NewBrandAdminHandler(cfg.DB, cfg.Cache)
	admin.GET("/brands", brands.List)
	admin.POST("/brands", brands.Create)
	admin.PUT("/brands/:id", brands.Update)
	admin.DELETE("/brands/:id", brands.Delete)

	tags := handlers.NewTagAdminHandler(cfg.DB, cfg.Cache)
	admin.GET("/tags", tags.List)
	admin.POST("/tags", tags.Create)
	admin.PUT("/tags/:id", tags.Update)
	admin.DELETE("/tags/:id", tags.Delete)

	attrs := handlers.NewAttributeAdminHandler(cfg.DB, cfg.Cache)
	admin.POST("/attributes", attrs.Create)
	admin.GET("/attributes/:id", attrs.Get)
	admin.DELETE("/attributes/:id", attrs.Delete)
	admin.POST("/attributes/:id/terms", attrs.AddTerm)
	admin.DELETE("/attributes/:id/terms/:termId", attrs.DeleteTerm)

	adminOrders := handlers.NewOrdersAdminHandler(cfg.DB, cfg.Currency)
	admin.GET("/orders", adminOrders.List)
	admin.GET("/orders/:id", adminOrders.Detail)
	admin.PATCH("/orders/:id/status", adminOrders.UpdateStatus)

	usersAdmin := handlers.NewUsersAdminHandler(users.NewApprovalService(cfg.DB, cfg.Mailer, cfg.MailFrom))
	admin.GET("/users", usersAdmin.List)
	admin.GET("/clients/pending", usersAdmin.PendingClients)
	admin.POST("/clients/:id/approve", usersAdmin.Approve)
	admin.POST("/clients/:id/reject", usersAdmin.Reject)
}
