package types

import "net/http"

// Invocation is one inbound request, independent of the transport that
// delivered it.
type Invocation struct {
	Method  string
	Headers http.Header
	Body    []byte
}

type CheckoutRequest struct {
	PriceID string
	SiteURL string
}

// SessionRequest is what gets sent to the payment provider.
type SessionRequest struct {
	PriceID    string
	Quantity   int64
	SuccessURL string
	CancelURL  string
}

type Session struct {
	ID  string
	URL string
}

type CheckoutSessionResponse struct {
	URL string `json:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Result is the outcome of one invocation: Status plus either URL or Error.
type Result struct {
	Status int
	URL    string
	Error  string
}

// Body returns the JSON document for the response body.
func (r Result) Body() any {
	if r.Error != "" || r.Status != http.StatusOK {
		return ErrorResponse{Error: r.Error}
	}
	return CheckoutSessionResponse{URL: r.URL}
}
