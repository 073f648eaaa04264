package providers

import (
	"context"
	"errors"
	"strings"

	"stripe-checkout-function/internal/services/checkout/types"

	"github.com/stripe/stripe-go/v84"
)

// FallbackErrorMessage is returned to callers when a provider failure carries
// no message of its own.
const FallbackErrorMessage = "Server error"

var ErrEmptySecretKey = errors.New("empty provider secret key")

// SessionError wraps a failed create-session call.
type SessionError struct {
	Err error
}

func (e *SessionError) Error() string {
	return "creating checkout session: " + e.Err.Error()
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, secretKey string, req types.SessionRequest) (*types.Session, error)
}

// ErrorMessage returns the provider's own description of err, suitable for
// the caller-facing error body.
func ErrorMessage(err error) string {
	if err == nil {
		return FallbackErrorMessage
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if msg := strings.TrimSpace(stripeErr.Msg); msg != "" {
			return msg
		}
		return FallbackErrorMessage
	}

	var sessErr *SessionError
	if errors.As(err, &sessErr) && sessErr.Err != nil {
		err = sessErr.Err
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return FallbackErrorMessage
}
