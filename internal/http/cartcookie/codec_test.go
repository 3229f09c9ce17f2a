package cartcookie

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundtrip(t *testing.T) {
	c := New([]byte("secret"), "cart_id", false)

	v := c.Encode("cart-123")
	id, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, "cart-123", id)
}

func TestDecode_Tampered(t *testing.T) {
	c := New([]byte("secret"), "cart_id", false)
	other := New([]byte("other-secret"), "cart_id", false)

	v := c.Encode("cart-123")

	_, err := other.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)

	// swapping the id keeps the old signature
	_, err = c.Decode("cart-999." + v[len("cart-123."):])
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecode_Malformed(t *testing.T) {
	c := New([]byte("secret"), "cart_id", false)

	for _, v := range []string{"", "no-dot", ".sigonly", "a.b.c"} {
		_, err := c.Decode(v)
		assert.ErrorIs(t, err, ErrInvalid, v)
	}
}

func TestGetCartID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := New([]byte("secret"), "cart_id", false)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx.Request.AddCookie(&http.Cookie{Name: "cart_id", Value: c.Encode("cart-123")})

	id, ok := c.GetCartID(ctx)
	require.True(t, ok)
	assert.Equal(t, "cart-123", id)
}

func TestGetCartID_InvalidCookieCleared(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := New([]byte("secret"), "cart_id", false)

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx.Request.AddCookie(&http.Cookie{Name: "cart_id", Value: "cart-123.garbage"})

	_, ok := c.GetCartID(ctx)
	assert.False(t, ok)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "cart_id=;", "invalid cookie is cleared")
}
