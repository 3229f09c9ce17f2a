package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signCallback(secret, orderRef, paymentRef string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderRef + "|" + paymentRef))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyCallback(t *testing.T) {
	r := NewRazorpay("key_id", "key_secret")

	cb := Callback{
		OrderRef:   "order_123",
		PaymentRef: "pay_456",
		Signature:  signCallback("key_secret", "order_123", "pay_456"),
	}
	assert.NoError(t, r.VerifyCallback(cb))
}

func TestVerifyCallback_BadSignature(t *testing.T) {
	r := NewRazorpay("key_id", "key_secret")

	bad := []Callback{
		{OrderRef: "order_123", PaymentRef: "pay_456", Signature: "deadbeef"},
		{OrderRef: "order_123", PaymentRef: "pay_456", Signature: signCallback("wrong_secret", "order_123", "pay_456")},
		{OrderRef: "order_999", PaymentRef: "pay_456", Signature: signCallback("key_secret", "order_123", "pay_456")},
		{OrderRef: "", PaymentRef: "pay_456", Signature: "x"},
		{OrderRef: "order_123", PaymentRef: "", Signature: "x"},
		{OrderRef: "order_123", PaymentRef: "pay_456", Signature: ""},
	}
	for i, cb := range bad {
		assert.ErrorIs(t, r.VerifyCallback(cb), ErrBadSignature, "case %d", i)
	}
}

func TestCreateOrder(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/orders", req.URL.Path)

		user, pass, ok := req.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		require.NoError(t, json.NewDecoder(req.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_abc","amount":4000,"currency":"INR"}`))
	}))
	defer srv.Close()

	r := NewRazorpay("key_id", "key_secret")
	r.SetBaseURL(srv.URL)

	po, err := r.CreateOrder(context.Background(), CreateOrderRequest{
		AmountCents: 4000,
		Currency:    "INR",
		Receipt:     "cart-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "order_abc", po.Ref)
	assert.Equal(t, 4000, po.AmountCents)
	assert.Equal(t, "INR", po.Currency)

	assert.EqualValues(t, 4000, gotBody["amount"])
	assert.Equal(t, "INR", gotBody["currency"])
	assert.Equal(t, "cart-1", gotBody["receipt"])
}

func TestCreateOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"description":"amount too small"}}`))
	}))
	defer srv.Close()

	r := NewRazorpay("key_id", "key_secret")
	r.SetBaseURL(srv.URL)

	_, err := r.CreateOrder(context.Background(), CreateOrderRequest{AmountCents: 1, Currency: "INR"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
