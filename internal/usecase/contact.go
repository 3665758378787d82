package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/email"
	"go-portfolio-backend/pkg/turnstile"
)

// Field limits for a submission.
const (
	maxNameLen    = 100
	maxEmailLen   = 254
	maxMessageLen = 5000
	maxTokenLen   = 2048
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type contactUsecase struct {
	sender        email.Sender
	verifier      turnstile.Verifier
	verifyEnabled bool
}

// NewContactUsecase creates a new contact usecase. verifier may be nil when
// verifyEnabled is false.
func NewContactUsecase(sender email.Sender, verifier turnstile.Verifier, verifyEnabled bool) domain.ContactUsecase {
	return &contactUsecase{
		sender:        sender,
		verifier:      verifier,
		verifyEnabled: verifyEnabled,
	}
}

// SubmitContact runs the submission pipeline: validate, verify, deliver.
// Checks short-circuit, so a malformed request always receives the message
// of its first failing check.
func (uc *contactUsecase) SubmitContact(ctx context.Context, req *domain.ContactRequest) (*domain.ContactResult, error) {
	name := strings.TrimSpace(req.Name)
	senderEmail := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)

	if name == "" || senderEmail == "" || message == "" {
		return nil, &domain.ValidationError{Message: "Name, email, and message are required"}
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("Name must be %d characters or less", maxNameLen)}
	}
	if utf8.RuneCountInString(senderEmail) > maxEmailLen {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("Email must be %d characters or less", maxEmailLen)}
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("Message must be %d characters or less", maxMessageLen)}
	}
	if !emailRegex.MatchString(senderEmail) {
		return nil, &domain.ValidationError{Message: "Invalid email format"}
	}

	if uc.verifyEnabled {
		if req.TurnstileToken == "" {
			return nil, &domain.ValidationError{Message: "Verification required. Please complete the challenge."}
		}
		if utf8.RuneCountInString(req.TurnstileToken) > maxTokenLen {
			return nil, &domain.ValidationError{Message: "Invalid verification token"}
		}

		result := uc.verifier.Verify(ctx, strings.TrimSpace(req.TurnstileToken), req.RemoteIP)
		if !result.Success {
			return nil, &domain.VerificationError{Codes: result.ErrorCodes}
		}
	}

	if !uc.sender.IsConfigured() {
		return nil, domain.ErrEmailNotConfigured
	}

	id, err := uc.sender.Send(ctx, email.ContactEmailData{
		SenderName:  name,
		SenderEmail: senderEmail,
		Message:     message,
	})
	if err != nil {
		// Detail is logged once, by the error middleware
		return nil, &domain.DeliveryError{Err: err}
	}

	return &domain.ContactResult{ID: id}, nil
}
