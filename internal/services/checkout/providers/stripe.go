package providers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"stripe-checkout-function/internal/services/checkout/types"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"
)

// StripeProvider creates hosted Stripe Checkout sessions. The secret key is
// supplied per call, so one provider serves any number of keys and the
// package-level stripe.Key is never touched.
type StripeProvider struct {
	backend stripe.Backend
}

type StripeOption func(*stripe.BackendConfig)

// WithAPIURL points the client at another Stripe API base, e.g. stripe-mock.
func WithAPIURL(url string) StripeOption {
	return func(cfg *stripe.BackendConfig) {
		if url != "" {
			cfg.URL = stripe.String(url)
		}
	}
}

func WithHTTPClient(client *http.Client) StripeOption {
	return func(cfg *stripe.BackendConfig) {
		cfg.HTTPClient = client
	}
}

func NewStripeProvider(logger *slog.Logger, opts ...StripeOption) *StripeProvider {
	if logger == nil {
		logger = slog.Default()
	}

	cfg := &stripe.BackendConfig{
		// failures surface to the caller immediately
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripeLogger{logger: logger.With("component", "stripe")},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &StripeProvider{
		backend: stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
	}
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, secretKey string, req types.SessionRequest) (*types.Session, error) {
	if secretKey == "" {
		return nil, ErrEmptySecretKey
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(quantity),
			},
		},
		SuccessURL:               stripe.String(req.SuccessURL),
		CancelURL:                stripe.String(req.CancelURL),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	client := session.Client{B: p.backend, Key: secretKey}

	s, err := client.New(params)
	if err != nil {
		return nil, &SessionError{Err: err}
	}
	if s == nil {
		return nil, &SessionError{Err: errors.New("empty checkout session response")}
	}

	return &types.Session{
		ID:  s.ID,
		URL: s.URL,
	}, nil
}
