// Package app wires configuration into a ready checkout service. Both the
// HTTP server and the serverless entrypoint start from here.
package app

import (
	"fmt"
	"log/slog"
	"os"

	"stripe-checkout-function/config"
	"stripe-checkout-function/internal/metrics"
	"stripe-checkout-function/internal/reporting"
	"stripe-checkout-function/internal/services/checkout"
	"stripe-checkout-function/internal/services/checkout/providers"

	"github.com/prometheus/client_golang/prometheus"
)

// NewLogger builds the JSON logger and installs it as the slog default.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	return logger
}

// NewCheckoutService registers metrics on reg; reg may be nil to skip them.
func NewCheckoutService(cfg config.AppConfig, logger *slog.Logger, reg prometheus.Registerer) (*checkout.Service, error) {
	reporter, err := reporting.New(cfg.Sentry.DSN, cfg.Sentry.Environment)
	if err != nil {
		return nil, err
	}

	var m *metrics.Checkout
	if reg != nil {
		m, err = metrics.NewCheckout(reg)
		if err != nil {
			return nil, fmt.Errorf("registering checkout metrics: %w", err)
		}
	}

	if cfg.Stripe.SecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY is not set, checkout requests will fail")
	}

	provider := providers.NewStripeProvider(logger, providers.WithAPIURL(cfg.Stripe.APIURL))

	return checkout.NewService(provider, checkout.Config{
		SecretKey: cfg.Stripe.SecretKey,
		SiteURL:   cfg.Site.URL,
	},
		checkout.WithLogger(logger),
		checkout.WithMetrics(m),
		checkout.WithReporter(reporter),
	), nil
}
