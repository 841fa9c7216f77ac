package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/clarifyai-api/internal/auth"
	"github.com/noah-isme/clarifyai-api/internal/utils"
)

const identityKey = "identity"

// JWTProtected rejects requests without a valid bearer token and stores the
// verified identity for downstream handlers.
func JWTProtected(verifier *auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "Missing Bearer token")
		}

		identity, err := verifier.Verify(tokenString)
		if err != nil {
			return sendAuthError(c, err)
		}

		c.Locals(identityKey, identity)
		c.Locals("user_id", identity.ID)
		return c.Next()
	}
}

// CurrentIdentity returns the identity stored by JWTProtected.
func CurrentIdentity(c *fiber.Ctx) (auth.Identity, bool) {
	identity, ok := c.Locals(identityKey).(auth.Identity)
	return identity, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func sendAuthError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrSecretNotConfigured):
		return utils.SendError(c, fiber.StatusInternalServerError, "JWT secret not configured")
	case errors.Is(err, auth.ErrMissingSubject):
		return utils.SendError(c, fiber.StatusUnauthorized, "Invalid token: missing subject")
	default:
		detail := "Invalid or expired token"
		var authErr *auth.Error
		if errors.As(err, &authErr) && authErr.Reason != "" {
			detail += ": " + authErr.Reason
		}
		return utils.SendError(c, fiber.StatusUnauthorized, detail)
	}
}
