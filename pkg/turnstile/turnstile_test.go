package turnstile_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-portfolio-backend/pkg/turnstile"

	"github.com/stretchr/testify/assert"
)

func TestVerifySuccess(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"secret":   r.PostForm.Get("secret"),
			"response": r.PostForm.Get("response"),
			"remoteip": r.PostForm.Get("remoteip"),
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	client := turnstile.NewClientWithURL("secret-key", srv.URL)
	result := client.Verify(context.Background(), "tok-123", "203.0.113.7")

	assert.True(t, result.Success)
	assert.Equal(t, "secret-key", gotForm["secret"])
	assert.Equal(t, "tok-123", gotForm["response"])
	assert.Equal(t, "203.0.113.7", gotForm["remoteip"])
}

func TestVerifyFailureCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success":     false,
			"error-codes": []string{"invalid-input-response"},
		})
	}))
	defer srv.Close()

	client := turnstile.NewClientWithURL("secret-key", srv.URL)
	result := client.Verify(context.Background(), "bad-token", "")

	assert.False(t, result.Success)
	assert.Equal(t, []string{"invalid-input-response"}, result.ErrorCodes)
}

func TestVerifyMissingSecret(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := turnstile.NewClientWithURL("", srv.URL)
	result := client.Verify(context.Background(), "tok-123", "")

	assert.False(t, result.Success)
	assert.Equal(t, []string{turnstile.CodeMissingSecret}, result.ErrorCodes)
	assert.Zero(t, calls, "no call should be made without a secret")
}

func TestVerifyTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := turnstile.NewClientWithURL("secret-key", srv.URL)
	result := client.Verify(context.Background(), "tok-123", "")

	assert.False(t, result.Success)
	assert.Equal(t, []string{turnstile.CodeInternalError}, result.ErrorCodes)
}

func TestVerifyMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := turnstile.NewClientWithURL("secret-key", srv.URL)
	result := client.Verify(context.Background(), "tok-123", "")

	assert.False(t, result.Success)
	assert.Equal(t, []string{turnstile.CodeInternalError}, result.ErrorCodes)
}
