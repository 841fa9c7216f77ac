package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/clarifyai-api/internal/config"
	"github.com/noah-isme/clarifyai-api/internal/utils"
)

// BannerResponse describes the service and its entry points.
type BannerResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
	Docs      string            `json:"docs"`
	Redoc     string            `json:"redoc"`
}

// Banner returns the root handler.
func Banner(cfg config.Config) fiber.Handler {
	payload := BannerResponse{
		Message: cfg.AppName,
		Version: cfg.AppVersion,
		Status:  "operational",
		Endpoints: map[string]string{
			"faqs":          "/api/v1/faqs",
			"announcements": "/api/v1/announcements",
			"chat-logs":     "/api/v1/chat-logs",
			"auth":          "/api/v1/auth/me",
			"health":        "/ping",
		},
		Docs:  "/docs",
		Redoc: "/redoc",
	}

	return func(c *fiber.Ctx) error {
		return utils.SendJSON(c, fiber.StatusOK, payload)
	}
}

// Ping reports liveness.
func Ping() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendJSON(c, fiber.StatusOK, fiber.Map{"status": "healthy"})
	}
}
