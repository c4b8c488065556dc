package shopapi

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// RateLimit returns a middleware that admits at most rps requests per
// second with the given burst across all clients. Rejected requests get a
// 429. A non-positive rps disables limiting.
func RateLimit(rps float64, burst int) fiber.Handler {
	if rps <= 0 {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(c *fiber.Ctx) error {
		if !limiter.Allow() {
			return fiber.ErrTooManyRequests
		}
		return c.Next()
	}
}
