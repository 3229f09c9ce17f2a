package http_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"esitemart.com/app/internal/cart"
	"esitemart.com/app/internal/catalog"
	apphttp "esitemart.com/app/internal/http"
	"esitemart.com/app/internal/http/middleware"
	"esitemart.com/app/internal/mailer"
	"esitemart.com/app/internal/orders"
	"esitemart.com/app/internal/payments"
	"esitemart.com/app/internal/storage"
	"esitemart.com/app/internal/users"
)

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	mail   *mailer.Mock
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&users.User{}, &middleware.Session{},
		&catalog.Category{}, &catalog.Brand{}, &catalog.Tag{},
		&catalog.Attribute{}, &catalog.Term{},
		&catalog.Product{}, &catalog.Variation{}, &catalog.Image{},
		&cart.Cart{}, &cart.CartItem{},
		&orders.Order{}, &orders.OrderItem{}, &payments.Payment{},
	))

	mock := &mailer.Mock{}
	r := apphttp.NewRouter(apphttp.RouterConfig{
		DB:           db,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Cache:        catalog.NewCache(nil, time.Minute),
		Storage:      storage.NewLocal(t.TempDir(), "/uploads"),
		Mailer:       mock,
		CookieSecret: []byte("test-secret"),
		SessionTTL:   time.Hour,
		MailFrom:     "no-reply@esitemart.com",
		Currency:     "INR",
	})
	return &testApp{router: r, db: db, mail: mock}
}

func (a *testApp) seedProduct(t *testing.T, id string, stock, priceCents int) {
	t.Helper()
	require.NoError(t, a.db.Create(&catalog.Product{
		ID: id, Slug: id, Title: "Product " + id, ProductType: catalog.TypeSimple,
		Status: catalog.StatusActive, PriceCents: priceCents, StockQty: stock,
		LeadDays: 2, CutoffTime: "14:00",
	}).Error)
}

func (a *testApp) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name && c.Value != "" {
			return c
		}
	}
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestGuestCartToCODCheckout(t *testing.T) {
	app := newTestApp(t)
	app.seedProduct(t, "p1", 3, 2000)

	// add more than stock: new line clamps to the ceiling
	rec := app.do(http.MethodPost, "/api/cart/items", `{"productId":"p1","quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cartCookie := cookieNamed(rec, "cart_id")
	require.NotNil(t, cartCookie, "guest gets a signed cart cookie")

	body := decode(t, rec)
	lines := body["cart"].(map[string]any)["lines"].([]any)
	require.Len(t, lines, 1)
	assert.EqualValues(t, 3, lines[0].(map[string]any)["quantity"].(float64))

	// incrementing past stock is rejected and changes nothing
	rec = app.do(http.MethodPost, "/api/cart/items", `{"productId":"p1","quantity":1}`, cartCookie)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(http.MethodGet, "/api/cart", "", cartCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	cartView := body["cart"].(map[string]any)
	assert.EqualValues(t, 3, cartView["itemCount"].(float64))
	assert.EqualValues(t, 6000, cartView["totalCents"].(float64))

	// drop to a quantity stock allows
	rec = app.do(http.MethodPatch, "/api/cart/items/p1", `{"quantity":2}`, cartCookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	checkoutBody := `{
		"name":"Asha","email":"asha@example.com","phone":"9999999999",
		"address":"12 Hill Rd","city":"Pune","state":"MH","pincode":"411001",
		"idempotencyKey":"idem-1"
	}`
	rec = app.do(http.MethodPost, "/api/checkout/cod", checkoutBody, cartCookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body = decode(t, rec)
	orderID := body["orderId"].(string)
	require.NotEmpty(t, orderID)
	assert.Equal(t, false, body["alreadyPlaced"])

	// resubmitting the same checkout returns the same order
	rec = app.do(http.MethodPost, "/api/checkout/cod", checkoutBody, cartCookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body = decode(t, rec)
	assert.Equal(t, orderID, body["orderId"])
	assert.Equal(t, true, body["alreadyPlaced"])

	// stock deducted once
	var p catalog.Product
	require.NoError(t, app.db.First(&p, "id = ?", "p1").Error)
	assert.Equal(t, 1, p.StockQty)

	// one confirmation mail
	assert.Eventually(t, func() bool { return app.mail.Count() == 1 },
		2*time.Second, 10*time.Millisecond)
}

func TestAddToCart_ValidationAndNotFound(t *testing.T) {
	app := newTestApp(t)
	app.seedProduct(t, "p1", 0, 2000)

	rec := app.do(http.MethodPost, "/api/cart/items", `{"productId":"missing","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// out of stock product
	rec = app.do(http.MethodPost, "/api/cart/items", `{"productId":"p1","quantity":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// bad body
	rec = app.do(http.MethodPost, "/api/cart/items", `{"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVariableProductRequiresFullSelection(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.db.Create(&catalog.Product{
		ID: "pv", Slug: "pv", Title: "Headphones", ProductType: catalog.TypeVariable,
		Status: catalog.StatusActive, AttributeIDs: catalog.EncodeIDs([]string{"color"}),
		LeadDays: 3,
	}).Error)
	require.NoError(t, app.db.Create(&catalog.Variation{
		ID: "v-blk", ProductID: "pv", TermIDs: catalog.EncodeIDs([]string{"black"}),
		PriceCents: 7999, StockQty: 5,
	}).Error)

	rec := app.do(http.MethodPost, "/api/cart/items", `{"productId":"pv","quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "no selection sent")

	rec = app.do(http.MethodPost, "/api/cart/items",
		`{"productId":"pv","quantity":1,"selectedTerms":{"color":"black"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	lines := body["cart"].(map[string]any)["lines"].([]any)
	require.Len(t, lines, 1)
	line := lines[0].(map[string]any)
	assert.Equal(t, "v-blk", line["itemKey"])
	assert.Equal(t, "v-blk", line["variationId"])
	assert.EqualValues(t, 7999, line["unitPriceCents"].(float64))
}

func TestRegisterLoginAndMe(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/api/auth/register",
		`{"name":"Asha","email":"asha@example.com","password":"s3cretpass"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(http.MethodPost, "/api/auth/login",
		`{"email":"asha@example.com","password":"s3cretpass"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	session := cookieNamed(rec, "session_id")
	require.NotNil(t, session)

	rec = app.do(http.MethodGet, "/api/me", "", session)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "asha@example.com", body["email"])
	assert.Equal(t, "user", body["role"])

	// no session, no profile
	rec = app.do(http.MethodGet, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// wrong password
	rec = app.do(http.MethodPost, "/api/auth/login",
		`{"email":"asha@example.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesAreGated(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/admin/orders", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// a normal user is not enough
	app.do(http.MethodPost, "/api/auth/register",
		`{"name":"Asha","email":"asha@example.com","password":"s3cretpass"}`)
	rec = app.do(http.MethodPost, "/api/auth/login",
		`{"email":"asha@example.com","password":"s3cretpass"}`)
	session := cookieNamed(rec, "session_id")
	require.NotNil(t, session)

	rec = app.do(http.MethodGet, "/api/admin/orders", "", session)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
