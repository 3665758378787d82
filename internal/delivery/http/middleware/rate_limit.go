package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis
	KeyPrefix string
	// Key extractor (IP-based unless overridden)
	KeyFunc func(*gin.Context) string
}

// ContactRateLimitConfig returns a strict per-IP config for the contact
// form, the one endpoint that triggers outbound email.
func ContactRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	limit, window = clampLimits(limit, window)
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:contact:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// GlobalRateLimitConfig returns a looser per-IP config applied to the whole
// API surface.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	limit, window = clampLimits(limit, window)
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// clampLimits keeps a zero or negative limit/window from ever reaching the
// token-bucket math, which would divide by zero.
func clampLimits(limit int, window time.Duration) (int, time.Duration) {
	if limit < 1 {
		limit = 1
	}
	if window < time.Second {
		window = time.Second
	}
	return limit, window
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// limiterEntry is the in-memory fallback: one token bucket per key.
// lastSeen holds unix nanos; it is touched by every request goroutine and
// read by the eviction goroutine, so access must be atomic.
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

var (
	limiterStore = sync.Map{}
	cleanupOnce  sync.Once
)

// startCleanup evicts idle in-memory limiters.
func startCleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			cutoff := time.Now().Add(-15 * time.Minute).UnixNano()
			limiterStore.Range(func(key, value interface{}) bool {
				if value.(*limiterEntry).lastSeen.Load() < cutoff {
					limiterStore.Delete(key)
				}
				return true
			})
		}
	}()
}

// RateLimitMiddleware limits requests per key. Counters live in Redis when
// it is configured; otherwise a local token bucket stands in. Redis errors
// fail open so a Redis outage cannot take the contact form down with it.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	cleanupOnce.Do(startCleanup)

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)

		allowed := true
		retryAfter := config.Window

		if client := redis.Client(); client != nil {
			count, ttl, err := incrRateLimitRedis(c.Request.Context(), client, fullKey, config.Window)
			if err != nil {
				logger.Log.Warn("rate limit redis error, falling back to in-memory", "error", err)
				allowed = allowInMemory(fullKey, config)
			} else if count > config.Limit {
				allowed = false
				retryAfter = ttl
			}
		} else {
			allowed = allowInMemory(fullKey, config)
		}

		if !allowed {
			seconds := int(retryAfter.Seconds())
			if seconds < 1 {
				seconds = 1
			}
			c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(seconds))

			logger.Log.Warn("rate limit exceeded",
				"key", fullKey,
				"path", c.Request.URL.Path,
				"request_id", c.GetString("RequestID"),
			)
			response.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}

func incrRateLimitRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, time.Duration, error) {
	res, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, int(window.Seconds())).Result()
	if err != nil {
		return 0, 0, err
	}

	vals, ok := res.([]interface{})
	if !ok || len(vals) != 2 {
		return 0, 0, errors.New("unexpected rate limit script reply")
	}
	count, _ := vals[0].(int64)
	ttl, _ := vals[1].(int64)
	return int(count), time.Duration(ttl) * time.Second, nil
}

func allowInMemory(key string, config RateLimitConfig) bool {
	entry, _ := limiterStore.LoadOrStore(key, &limiterEntry{
		limiter: rate.NewLimiter(rate.Every(config.Window/time.Duration(config.Limit)), config.Limit),
	})
	le := entry.(*limiterEntry)
	le.lastSeen.Store(time.Now().UnixNano())
	return le.limiter.Allow()
}
