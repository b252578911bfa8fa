package gateway

import (
	"context"
	"encoding/json"
)

// InitializeRequest carries the fields the provider needs to start a payment.
// AmountMinor is in the provider's minor unit (kobo/cents).
type InitializeRequest struct {
	Email       string
	AmountMinor int64
	Reference   string
	CallbackURL string
}

// InitializeResult is the provider's answer to a payment initialization
type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
}

// VerifyResult is the provider's authoritative view of a payment.
// Raw preserves the full provider payload for transaction metadata.
type VerifyResult struct {
	Status      string
	AmountMinor int64
	Raw         json.RawMessage
}

// Succeeded reports whether the provider settled the payment
func (r *VerifyResult) Succeeded() bool {
	return r.Status == "success"
}

// PaymentGateway abstracts the external payment provider API
type PaymentGateway interface {
	// Initialize starts a payment and returns the URL the shopper is
	// redirected to for checkout.
	//
	// Possible errors:
	// - ErrGatewayUnavailable: on transport failure or a non-ok provider response
	Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error)

	// Verify queries the authoritative status of a payment by reference
	//
	// Possible errors:
	// - ErrGatewayUnavailable
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
}
