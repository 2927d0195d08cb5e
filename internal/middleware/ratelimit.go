package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"docfinder/internal/utils"
)

// RateLimiter is a fixed-window counter backed by Redis.
type RateLimiter struct {
	Redis  *redis.Client
	Prefix string
	Limit  int
	Window time.Duration
}

func NewRateLimiter(r *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{Redis: r, Prefix: prefix, Limit: limit, Window: window}
}

// ByIP limits requests per client IP. A Redis failure fails open so auth
// keeps working when the limiter backend is down.
func (r *RateLimiter) ByIP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("%s:%s", r.Prefix, c.IP())
		count, err := r.Redis.Incr(c.Context(), key).Result()
		if err != nil {
			return c.Next()
		}
		if count == 1 {
			r.Redis.Expire(c.Context(), key, r.Window)
		}
		if count > int64(r.Limit) {
			return utils.JSONError(c, fiber.StatusTooManyRequests, "Too many requests")
		}
		return c.Next()
	}
}
