package middlewares

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/notehive/payout-ledger-api/internal/shared/ratelimit"
)

type RateLimitConfig struct {
	Limiter      ratelimit.Limiter
	KeyExtractor func(c fiber.Ctx) string
	Logger       *slog.Logger
}

// PerUserKeyExtractor keys the limiter on the authenticated user, falling
// back to the client IP for unauthenticated requests.
func PerUserKeyExtractor(scope string) func(c fiber.Ctx) string {
	return func(c fiber.Ctx) string {
		if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
			return scope + ":user:" + userID
		}
		return scope + ":ip:" + c.IP()
	}
}

func NewHTTPRateLimitMiddleware(cfg RateLimitConfig) fiber.Handler {
	if cfg.Limiter == nil {
		return func(c fiber.Ctx) error {
			return c.Next()
		}
	}

	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = func(c fiber.Ctx) string { return "ip:" + c.IP() }
	}

	return func(c fiber.Ctx) error {
		key := cfg.KeyExtractor(c)

		result, err := cfg.Limiter.AllowKey(c.Context(), key)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("rate limit check failed", "error", err, "key", key)
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		c.Set("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))

		if !result.Allowed {
			c.Set("Retry-After", strconv.FormatInt(int64(result.RetryAfter.Seconds())+1, 10))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests",
			})
		}

		return c.Next()
	}
}
