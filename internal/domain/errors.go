package domain

import "errors"

// ErrEmailNotConfigured means the active delivery provider is missing
// credentials. A deployment error, never a user error.
var ErrEmailNotConfigured = errors.New("email service is not configured")

// ValidationError rejects a submission before any external call is made.
// Message is safe to echo to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// VerificationError means the Turnstile token was rejected, or the
// verification call itself failed. Codes carries the provider (or
// sentinel) error codes for the client.
type VerificationError struct {
	Codes []string
}

func (e *VerificationError) Error() string {
	return "verification failed"
}

// DeliveryError wraps a provider or transport failure during the send.
// The wrapped detail is logged server-side only.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return "delivery failed: " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
