package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-portfolio-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderContactBodyEscapesMarkup(t *testing.T) {
	body, err := RenderContactBody(ContactEmailData{
		SenderName:  "Jane <b>Doe</b>",
		SenderEmail: "jane@example.com",
		Message:     `Hello <script>alert(1)</script> & "quotes" 'too'`,
	})
	require.NoError(t, err)

	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "&amp;")
	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "<b>Doe</b>")
}

func TestNewSenderSelection(t *testing.T) {
	cases := []struct {
		provider string
		want     any
	}{
		{config.ProviderSMTP, &SMTPSender{}},
		{config.ProviderEmailJS, &EmailJSSender{}},
		{config.ProviderResend, &ResendSender{}},
	}
	for _, tc := range cases {
		t.Run(tc.provider, func(t *testing.T) {
			sender, err := NewSender(&config.Config{EmailProvider: tc.provider})
			require.NoError(t, err)
			assert.IsType(t, tc.want, sender)
		})
	}

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewSender(&config.Config{EmailProvider: "pigeon"})
		assert.Error(t, err)
	})
}

func TestSMTPSenderIsConfigured(t *testing.T) {
	cfg := &config.Config{
		SMTPHost:       "smtp-relay.brevo.com",
		SMTPUsername:   "login@example.com",
		SMTPPassword:   "secret",
		ContactEmailTo: "me@example.com",
	}
	assert.True(t, NewSMTPSender(cfg).IsConfigured())

	cfg.SMTPPassword = ""
	assert.False(t, NewSMTPSender(cfg).IsConfigured())
}

func TestSMTPSenderFromFallsBackToLogin(t *testing.T) {
	s := NewSMTPSender(&config.Config{SMTPUsername: "login@example.com"})
	assert.Equal(t, "login@example.com", s.fromEmail)
}

func TestResendSenderSend(t *testing.T) {
	var got resendPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"id": "re_123"})
	}))
	defer srv.Close()

	sender := NewResendSender(&config.Config{
		ResendAPIKey:    "re_key",
		ResendFromEmail: "portfolio@example.com",
		ContactEmailTo:  "me@example.com",
	})
	sender.apiURL = srv.URL

	id, err := sender.Send(context.Background(), ContactEmailData{
		SenderName:  "Jane Doe",
		SenderEmail: "jane@example.com",
		Message:     "Hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "re_123", id)
	assert.Equal(t, "Bearer re_key", auth)
	assert.Equal(t, "portfolio@example.com", got.From)
	assert.Equal(t, []string{"me@example.com"}, got.To)
	assert.Equal(t, "jane@example.com", got.ReplyTo)
	assert.Equal(t, "Contact from Jane Doe", got.Subject)
	assert.Contains(t, got.HTML, "Jane Doe")
}

func TestResendSenderProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer srv.Close()

	sender := NewResendSender(&config.Config{
		ResendAPIKey:    "re_key",
		ResendFromEmail: "bad",
		ContactEmailTo:  "me@example.com",
	})
	sender.apiURL = srv.URL

	_, err := sender.Send(context.Background(), ContactEmailData{SenderName: "x", SenderEmail: "x@y.z", Message: "m"})
	assert.ErrorContains(t, err, "422")
}

func TestEmailJSSenderSend(t *testing.T) {
	var got emailJSPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	sender := NewEmailJSSender(&config.Config{
		EmailJSServiceID:  "svc_1",
		EmailJSTemplateID: "tpl_1",
		EmailJSPublicKey:  "pub_1",
		EmailJSPrivateKey: "priv_1",
	})
	sender.apiURL = srv.URL

	id, err := sender.Send(context.Background(), ContactEmailData{
		SenderName:  "Jane Doe",
		SenderEmail: "jane@example.com",
		Message:     "Hello",
	})
	require.NoError(t, err)

	assert.Empty(t, id, "emailjs has no message id")
	assert.Equal(t, "svc_1", got.ServiceID)
	assert.Equal(t, "tpl_1", got.TemplateID)
	assert.Equal(t, "pub_1", got.UserID)
	assert.Equal(t, "priv_1", got.AccessToken)
	assert.Equal(t, "Jane Doe", got.TemplateParams["name"])
	assert.Equal(t, "Contact from Jane Doe", got.TemplateParams["title"])
}

func TestEmailJSSenderProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("API calls are disabled for non-browser applications"))
	}))
	defer srv.Close()

	sender := NewEmailJSSender(&config.Config{
		EmailJSServiceID:  "svc_1",
		EmailJSTemplateID: "tpl_1",
		EmailJSPublicKey:  "pub_1",
		EmailJSPrivateKey: "priv_1",
	})
	sender.apiURL = srv.URL

	_, err := sender.Send(context.Background(), ContactEmailData{SenderName: "x", SenderEmail: "x@y.z", Message: "m"})
	assert.ErrorContains(t, err, "403")
}
