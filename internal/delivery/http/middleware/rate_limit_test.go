package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go-portfolio-backend/internal/delivery/http/middleware"
	"go-portfolio-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init()
}

func newLimitedRouter(limit int, prefix string) *gin.Engine {
	cfg := middleware.ContactRateLimitConfig(limit, time.Minute)
	cfg.KeyPrefix = prefix // isolate the shared in-memory store per test
	r := gin.New()
	r.Use(middleware.RateLimitMiddleware(cfg))
	r.POST("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimitAllowsUpToLimit(t *testing.T) {
	router := newLimitedRouter(3, "test:allow:")

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}
}

func TestRateLimitConcurrentAccess(t *testing.T) {
	router := newLimitedRouter(10000, "test:concurrent:")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ping", nil))
			}
		}()
	}
	wg.Wait()
}

func TestRateLimitZeroThresholdDoesNotPanic(t *testing.T) {
	router := newLimitedRouter(0, "test:zero:")

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ping", nil))
	})
	assert.Equal(t, http.StatusOK, w.Code, "a zero threshold clamps to one request per window")
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	router := newLimitedRouter(2, "test:reject:")

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ping", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.JSONEq(t, `{"error":"Too many requests. Please try again later."}`, w.Body.String())
}
