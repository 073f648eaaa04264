package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"stripe-checkout-function/internal/services/checkout"
	"stripe-checkout-function/internal/services/checkout/types"

	"github.com/aws/aws-lambda-go/events"
)

const fallbackErrorBody = `{"error":"Server error"}`

// LambdaHandler serves the checkout pipeline as a Netlify / API Gateway
// proxy function.
type LambdaHandler struct {
	svc CheckoutService
}

func NewLambdaHandler(svc CheckoutService) *LambdaHandler {
	return &LambdaHandler{svc: svc}
}

// Handle never returns an error: every outcome is a proxy response.
func (h *LambdaHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	inv := types.Invocation{
		Method:  req.HTTPMethod,
		Headers: http.Header{},
		Body:    []byte(req.Body),
	}
	for k, values := range req.MultiValueHeaders {
		for _, v := range values {
			inv.Headers.Add(k, v)
		}
	}
	for k, v := range req.Headers {
		inv.Headers.Set(k, v)
	}

	if req.IsBase64Encoded && req.HTTPMethod == http.MethodPost {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return proxyResponse(types.Result{
				Status: checkout.ErrInvalidPayload.Status,
				Error:  checkout.ErrInvalidPayload.Message,
			}), nil
		}
		inv.Body = decoded
	}

	return proxyResponse(h.svc.Handle(ctx, inv)), nil
}

func proxyResponse(res types.Result) events.APIGatewayProxyResponse {
	body, err := json.Marshal(res.Body())
	if err != nil {
		res.Status = http.StatusInternalServerError
		body = []byte(fallbackErrorBody)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: res.Status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
