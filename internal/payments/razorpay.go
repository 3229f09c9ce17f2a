package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

type Razorpay struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewRazorpay(keyID, keySecret string) *Razorpay {
	return &Razorpay{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   razorpayBaseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Razorpay) Name() string { return "razorpay" }

func (r *Razorpay) CreateOrder(ctx context.Context, req CreateOrderRequest) (ProviderOrder, error) {
	body, err := json.Marshal(map[string]any{
		"amount":   req.AmountCents, // smallest currency unit
		"currency": req.Currency,
		"receipt":  req.Receipt,
	})
	if err != nil {
		return ProviderOrder{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return ProviderOrder{}, err
	}
	httpReq.SetBasicAuth(r.keyID, r.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return ProviderOrder{}, fmt.Errorf("razorpay create order: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ProviderOrder{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ProviderOrder{}, fmt.Errorf("razorpay create order: status %d: %s", resp.StatusCode, raw)
	}

	var out struct {
		ID       string `json:"id"`
		Amount   int    `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return ProviderOrder{}, err
	}
	return ProviderOrder{Ref: out.ID, AmountCents: out.Amount, Currency: out.Currency}, nil
}

// VerifyCallback recomputes HMAC-SHA256(orderRef|paymentRef, keySecret)
// and compares it to the widget's signature in constant time.
func (r *Razorpay) VerifyCallback(cb Callback) error {
	if cb.OrderRef == "" || cb.PaymentRef == "" || cb.Signature == "" {
		return ErrBadSignature
	}
	mac := hmac.New(sha256.New, []byte(r.keySecret))
	mac.Write([]byte(cb.OrderRef + "|" + cb.PaymentRef))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(cb.Signature)) {
		return ErrBadSignature
	}
	return nil
}

// SetBaseURL points the provider at a test server.
func (r *Razorpay) SetBaseURL(u string) { r.baseURL = u }
