package config_test

import (
	"testing"

	"go-portfolio-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, config.ProviderSMTP, cfg.EmailProvider)
	assert.True(t, cfg.TurnstileEnabled)
	assert.Equal(t, "smtp-relay.brevo.com", cfg.SMTPHost)
	assert.Equal(t, 5, cfg.RateLimitContactThreshold)
	assert.Equal(t, 60, cfg.RateLimitWindowSeconds)
}

func TestLoadConfigProviderSelection(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "RESEND") // case-insensitive
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.ProviderResend, cfg.EmailProvider)
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "pigeon")
	_, err := config.LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadRecipient(t *testing.T) {
	t.Setenv("CONTACT_EMAIL_TO", "not-an-email")
	_, err := config.LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsZeroRateLimits(t *testing.T) {
	cases := []string{
		"RATE_LIMIT_WINDOW_SECONDS",
		"RATE_LIMIT_CONTACT_THRESHOLD",
		"RATE_LIMIT_GLOBAL_THRESHOLD",
	}
	for _, key := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "0")
			_, err := config.LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigTrimsFrontendSlash(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://example.com/")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", cfg.FrontendURL)
}
