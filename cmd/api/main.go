package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-portfolio-backend/config"
	_ "go-portfolio-backend/docs" // Important for Swagger
	v1 "go-portfolio-backend/internal/delivery/http/v1"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/email"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/redis"
	"go-portfolio-backend/pkg/turnstile"
)

// @title           Portfolio Backend API
// @version         1.0
// @description     Contact form relay for the portfolio site: validation, Turnstile verification, email delivery.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port, "provider", cfg.EmailProvider)

	// 3. Setup Redis (optional, rate limiting only)
	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
		}
	}

	// 4. Setup Email Sender
	sender, err := email.NewSender(cfg)
	if err != nil {
		logger.Log.Error("Failed to create email sender", "error", err)
		os.Exit(1)
	}
	if !sender.IsConfigured() {
		logger.Log.Warn("Email provider not fully configured - contact form will return 500 until credentials are set")
	}

	// 5. Setup Turnstile Verifier
	var verifier turnstile.Verifier
	if cfg.TurnstileEnabled {
		verifier = turnstile.NewClient(cfg.TurnstileSecretKey)
	}

	// 6. Setup UseCases
	contactUC := usecase.NewContactUsecase(sender, verifier, cfg.TurnstileEnabled)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		Config:    cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
