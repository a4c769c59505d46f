package app

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jalexanderII/zero-todo/config"
	"github.com/sirupsen/logrus"
)

// FiberMiddleware provides Fiber's built-in middlewares.
// See: https://docs.gofiber.io/api/middleware
func FiberMiddleware(a *fiber.App, cfg *config.Config, l *logrus.Logger) {
	a.Use(
		// access log goes through logrus' writer
		logger.New(logger.Config{
			Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency}\n",
			Output: l.Writer(),
		}),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowCredentials: true,
		}),
		// only the swagger assets are cacheable, todo responses never are
		cache.New(cache.Config{
			Next: func(c *fiber.Ctx) bool {
				return !strings.HasPrefix(c.Path(), "/swagger")
			},
		}),
		limiter.New(limiter.Config{
			// RATE_LIMIT_MAX=0 turns the limiter off
			Next: func(c *fiber.Ctx) bool {
				return cfg.RateLimitMax == 0
			},
			Max:               cfg.RateLimitMax,
			Expiration:        cfg.RateLimitWindow,
			LimiterMiddleware: limiter.SlidingWindow{},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests"})
			},
		}),
		recover.New(),
	)
}
