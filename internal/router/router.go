package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/clarifyai-api/internal/config"
	"github.com/noah-isme/clarifyai-api/internal/handler"
	"github.com/noah-isme/clarifyai-api/internal/middleware"
	"github.com/noah-isme/clarifyai-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	FAQHandler          *handler.FAQHandler
	AnnouncementHandler *handler.AnnouncementHandler
	ChatLogHandler      *handler.ChatLogHandler
	AuthHandler         *handler.AuthHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/", handler.Banner(cfg))
	app.Get("/ping", handler.Ping())
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	// Without a configured middleware every protected route fails closed.
	protect := deps.JWTMiddleware
	if protect == nil {
		protect = func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusInternalServerError, "authentication not configured")
		}
	}

	if deps.FAQHandler != nil {
		deps.FAQHandler.Register(api.Group("/faqs"), protect)
	}

	if deps.AnnouncementHandler != nil {
		deps.AnnouncementHandler.Register(api.Group("/announcements"), protect)
	}

	if deps.ChatLogHandler != nil {
		var limit fiber.Handler
		if cfg.ChatLogRateLimitPerMin > 0 {
			limit = middleware.RateLimit("chat_logs", cfg.ChatLogRateLimitPerMin, time.Minute)
		}
		deps.ChatLogHandler.Register(api.Group("/chat-logs"), protect, limit)
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"), protect)
		deps.AuthHandler.RegisterProtectedTest(api.Group("/protected"), protect)
	}
}
