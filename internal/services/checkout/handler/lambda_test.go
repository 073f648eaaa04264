package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"stripe-checkout-function/internal/services/checkout"
	"stripe-checkout-function/internal/services/checkout/types"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLambda(p *ProviderMock, cfg checkout.Config) *LambdaHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLambdaHandler(checkout.NewService(p, cfg, checkout.WithLogger(logger)))
}

func decodeProxyBody(t *testing.T, resp events.APIGatewayProxyResponse) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	return body
}

func TestLambdaHandle_Success(t *testing.T) {
	p := &ProviderMock{url: sessionURL}
	h := newTestLambda(p, checkout.Config{SecretKey: "sk_test_123", SiteURL: "https://shop.example"})

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Body:       `{"priceId":"price_123"}`,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, map[string]string{"url": sessionURL}, decodeProxyBody(t, resp))
	require.Len(t, p.calls, 1)
	assert.Equal(t, "https://shop.example/success.html", p.calls[0].SuccessURL)
}

func TestLambdaHandle_HeadersAreCaseInsensitive(t *testing.T) {
	p := &ProviderMock{url: sessionURL}
	h := newTestLambda(p, checkout.Config{SecretKey: "sk_test_123"})

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Headers:    map[string]string{"host": "shop.netlify.app"},
		Body:       `{"priceId":"price_123"}`,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, p.calls, 1)
	assert.Equal(t, "https://shop.netlify.app/success.html", p.calls[0].SuccessURL)
}

func TestLambdaHandle_OriginBeatsHost(t *testing.T) {
	p := &ProviderMock{url: sessionURL}
	h := newTestLambda(p, checkout.Config{SecretKey: "sk_test_123"})

	_, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Headers:    map[string]string{"origin": "https://shop.example", "host": "fn.example"},
		Body:       `{"priceId":"price_123"}`,
	})

	require.NoError(t, err)
	require.Len(t, p.calls, 1)
	assert.Equal(t, "https://shop.example/cancel.html", p.calls[0].CancelURL)
}

func TestLambdaHandle_Base64Body(t *testing.T) {
	p := &ProviderMock{url: sessionURL}
	h := newTestLambda(p, checkout.Config{SecretKey: "sk_test_123", SiteURL: "https://shop.example"})

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"priceId":"price_b64"}`)),
		IsBase64Encoded: true,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, p.calls, 1)
	assert.Equal(t, "price_b64", p.calls[0].PriceID)
}

func TestLambdaHandle_InvalidBase64Body(t *testing.T) {
	p := &ProviderMock{url: sessionURL}
	h := newTestLambda(p, checkout.Config{SecretKey: "sk_test_123", SiteURL: "https://shop.example"})

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Body:            "%%%not-base64",
		IsBase64Encoded: true,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, map[string]string{"error": "Invalid JSON body"}, decodeProxyBody(t, resp))
	assert.Empty(t, p.calls)
}

func TestLambdaHandle_ErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		cfg     checkout.Config
		req     events.APIGatewayProxyRequest
		status  int
		message string
	}{
		{
			name:    "method",
			cfg:     checkout.Config{SecretKey: "sk_test_123", SiteURL: "https://shop.example"},
			req:     events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet},
			status:  http.StatusMethodNotAllowed,
			message: "Method Not Allowed",
		},
		{
			name:    "json",
			cfg:     checkout.Config{SecretKey: "sk_test_123", SiteURL: "https://shop.example"},
			req:     events.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Body: "{"},
			status:  http.StatusBadRequest,
			message: "Invalid JSON body",
		},
		{
			name:    "price id",
			cfg:     checkout.Config{SecretKey: "sk_test_123", SiteURL: "https://shop.example"},
			req:     events.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Body: `{"priceId":"prod_1"}`},
			status:  http.StatusBadRequest,
			message: "Missing or invalid priceId (must start with price_)",
		},
		{
			name:    "credential",
			cfg:     checkout.Config{SiteURL: "https://shop.example"},
			req:     events.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Body: `{"priceId":"price_1"}`},
			status:  http.StatusInternalServerError,
			message: "Missing STRIPE_SECRET_KEY in environment variables",
		},
		{
			name:    "site url",
			cfg:     checkout.Config{SecretKey: "sk_test_123"},
			req:     events.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Body: `{"priceId":"price_1"}`},
			status:  http.StatusInternalServerError,
			message: "Could not determine site URL for redirect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestLambda(&ProviderMock{url: sessionURL}, tt.cfg)

			resp, err := h.Handle(context.Background(), tt.req)

			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Headers["Content-Type"])
			assert.Equal(t, map[string]string{"error": tt.message}, decodeProxyBody(t, resp))
		})
	}
}

func TestProxyResponse_AlwaysJSON(t *testing.T) {
	resp := proxyResponse(types.Result{Status: http.StatusInternalServerError})

	assert.Equal(t, `{"error":""}`, resp.Body)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
}
