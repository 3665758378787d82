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

const defaultEmailJSURL = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSSender delivers through the EmailJS REST API. The recipient and
// layout live in the EmailJS template, so only template params are sent.
type EmailJSSender struct {
	serviceID  string
	templateID string
	publicKey  string
	privateKey string
	apiURL     string
	httpClient *http.Client
}

func NewEmailJSSender(cfg *config.Config) *EmailJSSender {
	return &EmailJSSender{
		serviceID:  cfg.EmailJSServiceID,
		templateID: cfg.EmailJSTemplateID,
		publicKey:  cfg.EmailJSPublicKey,
		privateKey: cfg.EmailJSPrivateKey,
		apiURL:     defaultEmailJSURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type emailJSPayload struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken"`
	TemplateParams map[string]any `json:"template_params"`
}

// Send posts the template params. EmailJS answers a bare "OK", so no
// message identifier is returned.
func (s *EmailJSSender) Send(ctx context.Context, data ContactEmailData) (string, error) {
	payload := emailJSPayload{
		ServiceID:   s.serviceID,
		TemplateID:  s.templateID,
		UserID:      s.publicKey,
		AccessToken: s.privateKey,
		TemplateParams: map[string]any{
			"name":       data.SenderName,
			"email":      data.SenderEmail,
			"message":    data.Message,
			"from_name":  data.SenderName,
			"from_email": data.SenderEmail,
			"title":      subjectFor(data),
			"time":       time.Now().Format("1/2/2006, 3:04:05 PM"),
		},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("emailjs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("emailjs returned %d: %s", resp.StatusCode, detail)
	}
	return "", nil
}

func (s *EmailJSSender) IsConfigured() bool {
	return s.serviceID != "" && s.templateID != "" && s.publicKey != "" && s.privateKey != ""
}
