package middleware

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimit caps requests per client address for a named route key using a
// fixed one-minute Redis window. Without Redis it is a no-op, and cache
// errors fail open so a limiter outage never takes the API down with it.
func RateLimit(cache *redis.Client, route string, maxPerMin int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cache == nil || maxPerMin <= 0 {
			return c.Next()
		}
		key := "rl:" + route + ":" + c.IP()
		cnt, err := cache.Incr(c.UserContext(), key).Result()
		if err != nil {
			return c.Next() // fail-open on cache errors
		}
		if cnt == 1 {
			cache.Expire(c.UserContext(), key, time.Minute)
		}
		if cnt > int64(maxPerMin) {
			return fiber.NewError(http.StatusTooManyRequests, "rate limit exceeded, try again later")
		}
		return c.Next()
	}
}
