package middleware

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

// RateLimiter provides Redis-backed fixed window rate limiting per client IP.
type RateLimiter struct {
	rdb       *redis.Client
	maxReqs   int
	windowSec int
	prefix    string
}

// NewRateLimiter creates a rate limiter.
func NewRateLimiter(rdb *redis.Client, maxReqs, windowSec int) *RateLimiter {
	return &RateLimiter{
		rdb:       rdb,
		maxReqs:   maxReqs,
		windowSec: windowSec,
		prefix:    "movie-fe:ratelimit:",
	}
}

// Handler returns a Fiber middleware handler for rate limiting.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		key := rl.prefix + c.IP()
		ctx := c.Context()

		count, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			// fail open
			slog.Warn("rate limiter unavailable", "error", err)
			return c.Next()
		}

		window := time.Duration(rl.windowSec) * time.Second
		ttl, err := rl.rdb.TTL(ctx, key).Result()
		if err != nil || ttl < 0 {
			// the window has no expiry yet, or a previous EXPIRE was lost
			if err := rl.rdb.Expire(ctx, key, window).Err(); err != nil {
				slog.Warn("rate limiter failed to set window expiry", "key", key, "error", err)
			}
			ttl = window
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.maxReqs))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", max(0, int64(rl.maxReqs)-count)))
		c.Set("X-RateLimit-Reset", strconv.Itoa(int(ttl.Seconds())))

		if int(count) > rl.maxReqs {
			c.Set("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests, please slow down.")
		}

		return c.Next()
	}
}
