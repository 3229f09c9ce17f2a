package payments

import "context"

type CreateOrderRequest struct {
	AmountCents int
	Currency    string
	Receipt     string
}

// ProviderOrder is the gateway-side order the hosted checkout widget is
// opened with.
type ProviderOrder struct {
	Ref         string
	AmountCents int
	Currency    string
}

// Callback is the widget's completion signal: two references and a
// signature the gateway computed over them.
type Callback struct {
	OrderRef   string
	PaymentRef string
	Signature  string
}

type Provider interface {
	Name() string
	CreateOrder(ctx context.Context, req CreateOrderRequest) (ProviderOrder, error)

	// VerifyCallback checks the callback signature; an invalid one must
	// never place an order.
	VerifyCallback(cb Callback) error
}
