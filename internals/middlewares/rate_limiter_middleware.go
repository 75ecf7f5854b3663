package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/configs"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
)

// RateLimitEnabled switches every limiter below off when false.
var RateLimitEnabled = true

func newLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			return !RateLimitEnabled
		},
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter for every endpoint.
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(
		configs.GetEnvInt("RATE_LIMIT_MAX", 100),
		time.Duration(configs.GetEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60))*time.Second,
		"Too many requests. Please try again later.",
	)
}

func LoginRateLimiter() fiber.Handler {
	return newLimiter(5, time.Minute, "Too many login attempts. Please try again shortly.")
}

func RegisterRateLimiter() fiber.Handler {
	return newLimiter(3, 5*time.Minute, "Too many signup attempts. Please wait a few minutes.")
}

// Inbox creation hits a paid third party API.
func MailboxRateLimiter() fiber.Handler {
	return newLimiter(10, time.Minute, "Too many inbox requests. Please try again later.")
}
