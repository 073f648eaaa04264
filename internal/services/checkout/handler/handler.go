package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"stripe-checkout-function/internal/services/checkout"
	"stripe-checkout-function/internal/services/checkout/types"
)

const MaxBodyBytes = int64(65536)

type CheckoutService interface {
	Handle(ctx context.Context, inv types.Invocation) types.Result
}

type Handler struct {
	svc CheckoutService
}

func NewHandler(svc CheckoutService) *Handler {
	return &Handler{svc: svc}
}

// ServeHTTP answers every method; rejecting non-POST requests is part of the
// checkout pipeline so that the 405 body is JSON too.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.CreateCheckoutSession(w, r)
}

func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	inv := types.Invocation{
		Method:  r.Method,
		Headers: r.Header.Clone(),
	}
	if inv.Headers == nil {
		inv.Headers = http.Header{}
	}
	// net/http moves Host out of the header map
	if r.Host != "" {
		inv.Headers.Set("Host", r.Host)
	}

	if r.Method == http.MethodPost && r.Body != nil {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
		if err != nil {
			slog.Warn("reading request body", "error", err)
			writeResult(w, types.Result{
				Status: checkout.ErrInvalidPayload.Status,
				Error:  checkout.ErrInvalidPayload.Message,
			})
			return
		}
		inv.Body = body
	}

	writeResult(w, h.svc.Handle(r.Context(), inv))
}

func writeResult(w http.ResponseWriter, res types.Result) {
	respondJSON(w, res.Status, res.Body())
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
