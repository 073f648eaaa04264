package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for CheckoutSessions.
const (
	OutcomeCreated             = "created"
	OutcomeMethodNotAllowed    = "method_not_allowed"
	OutcomeInvalidPayload      = "invalid_payload"
	OutcomeInvalidPriceID      = "invalid_price_id"
	OutcomeMissingCredential   = "missing_credential"
	OutcomeUnresolvableSiteURL = "unresolvable_site_url"
	OutcomeProviderError       = "provider_error"
	OutcomePanic               = "panic"
)

// Checkout holds the collectors of the checkout function. A nil *Checkout
// is valid and records nothing.
type Checkout struct {
	sessions         *prometheus.CounterVec
	providerDuration prometheus.Histogram
}

// NewCheckout creates the collectors and registers them on reg.
func NewCheckout(reg prometheus.Registerer) (*Checkout, error) {
	m := &Checkout{
		sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checkout_sessions_total",
				Help: "Checkout session requests by outcome",
			},
			[]string{"outcome"},
		),
		providerDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "checkout_provider_duration_seconds",
				Help:    "Latency of create-checkout-session calls to the payment provider",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	for _, c := range []prometheus.Collector{m.sessions, m.providerDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Checkout) Observe(outcome string) {
	if m == nil {
		return
	}
	m.sessions.WithLabelValues(outcome).Inc()
}

func (m *Checkout) ObserveProvider(d time.Duration) {
	if m == nil {
		return
	}
	m.providerDuration.Observe(d.Seconds())
}
