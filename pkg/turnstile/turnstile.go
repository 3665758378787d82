// Package turnstile verifies Cloudflare Turnstile tokens against the
// siteverify endpoint.
package turnstile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// Sentinel error codes for failures that happen before or instead of a
// provider verdict. They share the namespace Turnstile itself uses.
const (
	CodeMissingSecret = "missing-input-secret"
	CodeInternalError = "internal-error"
)

// Result is the siteverify verdict.
type Result struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

// Verifier checks a challenge token issued to a browser.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) *Result
}

// Client calls the Cloudflare siteverify API.
type Client struct {
	secret     string
	verifyURL  string
	httpClient *http.Client
}

// NewClient creates a verifier with the shared secret. An empty secret is
// allowed; every verification then fails with CodeMissingSecret.
func NewClient(secret string) *Client {
	return &Client{
		secret:    secret,
		verifyURL: defaultVerifyURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithURL is used by tests to point at a stub endpoint.
func NewClientWithURL(secret, verifyURL string) *Client {
	c := NewClient(secret)
	c.verifyURL = verifyURL
	return c
}

// Verify submits the token to siteverify. A transport or decode failure is
// reported as an unsuccessful Result with CodeInternalError, never as
// success.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) *Result {
	if c.secret == "" {
		return &Result{Success: false, ErrorCodes: []string{CodeMissingSecret}}
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return &Result{Success: false, ErrorCodes: []string{CodeInternalError}}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Result{Success: false, ErrorCodes: []string{CodeInternalError}}
	}
	defer resp.Body.Close()

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return &Result{Success: false, ErrorCodes: []string{CodeInternalError}}
	}
	return &result
}
