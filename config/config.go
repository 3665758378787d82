package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Supported email delivery providers.
const (
	ProviderSMTP    = "smtp"
	ProviderEmailJS = "emailjs"
	ProviderResend  = "resend"
)

type Config struct {
	Port        string `validate:"required,numeric"`
	FrontendURL string
	StaticDir   string // optional, serve the built SPA bundle when set

	// Turnstile (human verification)
	TurnstileEnabled   bool
	TurnstileSecretKey string

	// Email delivery
	EmailProvider  string `validate:"required,oneof=smtp emailjs resend"`
	ContactEmailTo string `validate:"omitempty,email"`

	// SMTP (Brevo-style relay)
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string `validate:"omitempty,email"`

	// EmailJS REST API
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string

	// Resend REST API
	ResendAPIKey    string
	ResendFromEmail string `validate:"omitempty,email"`

	// Redis/Upstash Configuration (rate limiting)
	UpstashRedisURL      string
	UpstashRedisPassword string

	// Rate Limiting Configuration
	RateLimitWindowSeconds    int `validate:"min=1"`
	RateLimitContactThreshold int `validate:"min=1"`
	RateLimitGlobalThreshold  int `validate:"min=1"`
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent.
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		// Strip trailing slash so origin comparison is exact
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		StaticDir:   getEnv("STATIC_DIR", ""),
		// Turnstile
		TurnstileEnabled:   getEnvBool("TURNSTILE_ENABLED", true),
		TurnstileSecretKey: getEnv("TURNSTILE_SECRET_KEY", ""),
		// Email delivery
		EmailProvider:  strings.ToLower(getEnv("EMAIL_PROVIDER", ProviderSMTP)),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", ""),
		// SMTP
		SMTPHost:      getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", ""),
		// EmailJS
		EmailJSServiceID:  getEnv("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateID: getEnv("EMAILJS_TEMPLATE_ID", ""),
		EmailJSPublicKey:  getEnv("EMAILJS_PUBLIC_KEY", ""),
		EmailJSPrivateKey: getEnv("EMAILJS_PRIVATE_KEY", ""),
		// Resend
		ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
		ResendFromEmail: getEnv("RESEND_FROM_EMAIL", ""),
		// Redis/Upstash
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate limiting (with sensible defaults)
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	// Missing provider credentials are a per-request 500, not a startup
	// failure, but the warning saves a deploy/debug round trip.
	if cfg.TurnstileEnabled && cfg.TurnstileSecretKey == "" {
		log.Println("WARNING: TURNSTILE_SECRET_KEY not set. Verification will reject all submissions.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
