package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-portfolio-backend/config"
)

const defaultResendURL = "https://api.resend.com/emails"

// ResendSender delivers through the Resend REST API. Resend is the only
// provider that hands back a message identifier.
type ResendSender struct {
	apiKey     string
	fromEmail  string
	toEmail    string
	apiURL     string
	httpClient *http.Client
}

func NewResendSender(cfg *config.Config) *ResendSender {
	return &ResendSender{
		apiKey:     cfg.ResendAPIKey,
		fromEmail:  cfg.ResendFromEmail,
		toEmail:    cfg.ContactEmailTo,
		apiURL:     defaultResendURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID string `json:"id"`
}

func (s *ResendSender) Send(ctx context.Context, data ContactEmailData) (string, error) {
	body, err := RenderContactBody(data)
	if err != nil {
		return "", err
	}

	raw, err := json.Marshal(resendPayload{
		From:    s.fromEmail,
		To:      []string{s.toEmail},
		ReplyTo: data.SenderEmail,
		Subject: subjectFor(data),
		HTML:    body,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("resend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("resend returned %d: %s", resp.StatusCode, detail)
	}

	var parsed resendResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		// Delivery was accepted; a missing id is not a failure.
		return "", nil
	}
	return parsed.ID, nil
}

func (s *ResendSender) IsConfigured() bool {
	return s.apiKey != "" && s.fromEmail != "" && s.toEmail != ""
}
