// Package email delivers contact form submissions through one of several
// interchangeable providers (SMTP relay, EmailJS, Resend).
package email

import (
	"context"
	"fmt"

	"go-portfolio-backend/config"
)

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Message     string
}

// Sender is the delivery capability. Send returns the provider-assigned
// message identifier when the provider reports one, "" otherwise.
type Sender interface {
	Send(ctx context.Context, data ContactEmailData) (id string, err error)
	// IsConfigured reports whether the provider has the credentials it
	// needs to attempt a send.
	IsConfigured() bool
}

// NewSender builds the provider selected by EMAIL_PROVIDER.
func NewSender(cfg *config.Config) (Sender, error) {
	switch cfg.EmailProvider {
	case config.ProviderSMTP:
		return NewSMTPSender(cfg), nil
	case config.ProviderEmailJS:
		return NewEmailJSSender(cfg), nil
	case config.ProviderResend:
		return NewResendSender(cfg), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
}

func subjectFor(data ContactEmailData) string {
	return fmt.Sprintf("Contact from %s", data.SenderName)
}
