package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/clarifyai-api/internal/dto"
	"github.com/noah-isme/clarifyai-api/internal/utils"
)

// AuthHandler exposes identity introspection for authenticated callers.
type AuthHandler struct{}

// NewAuthHandler constructs the handler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Register wires /auth/me under router.
func (h *AuthHandler) Register(router fiber.Router, protect fiber.Handler) {
	router.Get("/me", protect, h.me)
}

// RegisterProtectedTest wires the authentication smoke test route.
func (h *AuthHandler) RegisterProtectedTest(router fiber.Router, protect fiber.Handler) {
	router.Post("/test", protect, h.protectedTest)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	identity := currentIdentity(c)
	return utils.SendJSON(c, fiber.StatusOK, dto.MeResponse{
		ID:           identity.ID,
		Email:        identity.Email,
		AuthProvider: authProvider(identity.Email),
	})
}

func (h *AuthHandler) protectedTest(c *fiber.Ctx) error {
	identity := currentIdentity(c)
	return utils.SendJSON(c, fiber.StatusOK, dto.ProtectedTestResponse{
		Message: "Authentication successful",
		User: dto.ProtectedUser{
			ID:    identity.ID,
			Email: identity.Email,
			Role:  identity.Role,
		},
	})
}

// authProvider guesses the sign-in provider from the email address.
func authProvider(email string) string {
	if strings.Contains(strings.ToLower(email), "google") {
		return "google"
	}
	return "email"
}
