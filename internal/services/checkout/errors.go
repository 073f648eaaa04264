package checkout

import (
	"net/http"

	"stripe-checkout-function/internal/metrics"
)

type Kind int

const (
	KindMethodNotAllowed Kind = iota + 1
	KindInvalidPayload
	KindInvalidPriceID
	KindMissingCredential
	KindUnresolvableSiteURL
	KindProvider
)

// Error is a failure that is answered to the caller. Message is the public
// text of the JSON error body.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// CallerError reports whether the failure was caused by the request itself.
func (e *Error) CallerError() bool {
	return e.Status < http.StatusInternalServerError
}

var (
	ErrMethodNotAllowed = &Error{
		Kind:    KindMethodNotAllowed,
		Status:  http.StatusMethodNotAllowed,
		Message: "Method Not Allowed",
	}
	ErrInvalidPayload = &Error{
		Kind:    KindInvalidPayload,
		Status:  http.StatusBadRequest,
		Message: "Invalid JSON body",
	}
	ErrInvalidPriceID = &Error{
		Kind:    KindInvalidPriceID,
		Status:  http.StatusBadRequest,
		Message: "Missing or invalid priceId (must start with " + PriceIDPrefix + ")",
	}
	ErrMissingCredential = &Error{
		Kind:    KindMissingCredential,
		Status:  http.StatusInternalServerError,
		Message: "Missing STRIPE_SECRET_KEY in environment variables",
	}
	ErrUnresolvableSiteURL = &Error{
		Kind:    KindUnresolvableSiteURL,
		Status:  http.StatusInternalServerError,
		Message: "Could not determine site URL for redirect",
	}
	ErrProvider = &Error{
		Kind:    KindProvider,
		Status:  http.StatusInternalServerError,
		Message: "Server error",
	}
)

func (k Kind) outcome() string {
	switch k {
	case KindMethodNotAllowed:
		return metrics.OutcomeMethodNotAllowed
	case KindInvalidPayload:
		return metrics.OutcomeInvalidPayload
	case KindInvalidPriceID:
		return metrics.OutcomeInvalidPriceID
	case KindMissingCredential:
		return metrics.OutcomeMissingCredential
	case KindUnresolvableSiteURL:
		return metrics.OutcomeUnresolvableSiteURL
	default:
		return metrics.OutcomeProviderError
	}
}

// withCause copies a sentinel, attaching the underlying error.
func withCause(sentinel *Error, err error) *Error {
	e := *sentinel
	e.Err = err
	return &e
}
