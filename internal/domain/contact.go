package domain

import "context"

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Message        string `json:"message"`
	TurnstileToken string `json:"turnstileToken"`

	// RemoteIP is filled in by the HTTP layer from the forwarding headers
	// and forwarded to Turnstile; it never appears on the wire.
	RemoteIP string `json:"-"`
}

// ContactResult is the outcome of a delivered submission. ID is the
// provider-assigned message identifier when the provider returns one.
type ContactResult struct {
	ID string
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SubmitContact validates a submission, verifies the Turnstile token
	// when verification is enabled, and delivers it via the configured
	// email provider.
	SubmitContact(ctx context.Context, req *ContactRequest) (*ContactResult, error)
}
