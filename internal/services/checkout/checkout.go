// Package checkout turns one inbound request into one hosted checkout
// session. The validation pipeline short-circuits on the first failure and
// every outcome, including a panic, is answered as a types.Result.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"stripe-checkout-function/internal/metrics"
	"stripe-checkout-function/internal/reporting"
	"stripe-checkout-function/internal/services/checkout/providers"
	"stripe-checkout-function/internal/services/checkout/types"
)

const (
	PriceIDPrefix = "price_"

	successPath = "/success.html"
	cancelPath  = "/cancel.html"
)

var errEmptySessionURL = errors.New("provider returned a session without a url")

type Config struct {
	// SecretKey is the provider credential. Empty means every request fails
	// with ErrMissingCredential.
	SecretKey string
	// SiteURL overrides the redirect base derived from request headers.
	SiteURL string
}

type Service struct {
	provider providers.PaymentProvider
	cfg      Config
	logger   *slog.Logger
	metrics  *metrics.Checkout
	reporter reporting.Reporter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Checkout) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithReporter(r reporting.Reporter) Option {
	return func(s *Service) {
		if r != nil {
			s.reporter = r
		}
	}
}

func NewService(provider providers.PaymentProvider, cfg Config, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		cfg:      cfg,
		logger:   slog.Default(),
		reporter: reporting.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle runs one invocation to completion. It never panics and never
// returns a Result without a body.
func (s *Service) Handle(ctx context.Context, inv types.Invocation) (res types.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("panic: %v", rec)
			s.logger.Error("checkout handler panicked", "error", err)
			s.metrics.Observe(metrics.OutcomePanic)
			s.reporter.Report(err, map[string]string{"outcome": metrics.OutcomePanic})
			res = types.Result{
				Status: http.StatusInternalServerError,
				Error:  providers.FallbackErrorMessage,
			}
		}
	}()

	sess, err := s.CreateCheckoutSession(ctx, inv)
	if err != nil {
		var checkoutErr *Error
		if !errors.As(err, &checkoutErr) {
			checkoutErr = withCause(ErrProvider, err)
		}
		s.metrics.Observe(checkoutErr.Kind.outcome())
		return types.Result{
			Status: checkoutErr.Status,
			Error:  checkoutErr.Message,
		}
	}

	s.metrics.Observe(metrics.OutcomeCreated)
	return types.Result{
		Status: http.StatusOK,
		URL:    sess.URL,
	}
}

// CreateCheckoutSession validates inv and asks the provider for a session.
// Every returned error is an *Error.
func (s *Service) CreateCheckoutSession(ctx context.Context, inv types.Invocation) (*types.Session, error) {
	if inv.Method != http.MethodPost {
		return nil, ErrMethodNotAllowed
	}

	priceID, err := s.parsePriceID(inv.Body)
	if err != nil {
		return nil, err
	}

	if s.cfg.SecretKey == "" {
		s.logger.Error("stripe secret key is not configured")
		return nil, ErrMissingCredential
	}

	siteURL, ok := ResolveSiteURL(s.cfg.SiteURL, inv.Headers)
	if !ok {
		s.logger.Error("could not determine site url for redirect")
		return nil, ErrUnresolvableSiteURL
	}

	req := types.CheckoutRequest{PriceID: priceID, SiteURL: siteURL}

	return s.createSession(ctx, req)
}

func (s *Service) createSession(ctx context.Context, req types.CheckoutRequest) (*types.Session, error) {
	start := time.Now()
	sess, err := s.provider.CreateCheckoutSession(ctx, s.cfg.SecretKey, types.SessionRequest{
		PriceID:    req.PriceID,
		Quantity:   1,
		SuccessURL: req.SiteURL + successPath,
		CancelURL:  req.SiteURL + cancelPath,
	})
	s.metrics.ObserveProvider(time.Since(start))

	if err == nil && (sess == nil || sess.URL == "") {
		err = errEmptySessionURL
	}
	if err != nil {
		s.logger.Error("stripe error", "error", err, "price_id", req.PriceID)
		s.reporter.Report(err, map[string]string{"price_id": req.PriceID})

		checkoutErr := withCause(ErrProvider, err)
		if !errors.Is(err, errEmptySessionURL) {
			checkoutErr.Message = providers.ErrorMessage(err)
		}
		return nil, checkoutErr
	}

	return sess, nil
}

// parsePriceID decodes body and extracts a valid price identifier. An empty
// body reads as an empty object.
func (s *Service) parsePriceID(body []byte) (string, error) {
	if len(body) == 0 {
		body = []byte("{}")
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", withCause(ErrInvalidPayload, err)
	}

	// anything other than an object has no priceId
	fields, _ := payload.(map[string]any)
	raw := fields["priceId"]

	s.logger.Info("received priceId", "price_id", raw)

	priceID, ok := raw.(string)
	if !ok || !ValidPriceID(priceID) {
		return "", ErrInvalidPriceID
	}

	return priceID, nil
}

func ValidPriceID(id string) bool {
	return id != "" && strings.HasPrefix(id, PriceIDPrefix)
}

// ResolveSiteURL picks the redirect base: the configured URL, then the
// Origin header, then the Host header. The Host fallback assumes https
// unless X-Forwarded-Proto says otherwise.
func ResolveSiteURL(configured string, headers http.Header) (string, bool) {
	if u := strings.TrimSpace(configured); u != "" {
		return strings.TrimRight(u, "/"), true
	}

	if origin := strings.TrimSpace(headers.Get("Origin")); origin != "" && origin != "null" {
		return strings.TrimRight(origin, "/"), true
	}

	host := strings.TrimSpace(headers.Get("Host"))
	if host == "" {
		return "", false
	}

	scheme := "https"
	if proto := strings.ToLower(strings.TrimSpace(headers.Get("X-Forwarded-Proto"))); proto == "http" {
		scheme = proto
	}

	return scheme + "://" + host, true
}
