package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/clarifyai-api/internal/auth"
	"github.com/noah-isme/clarifyai-api/internal/middleware"
)

const secret = "middleware-test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedApp(verifier *auth.Verifier) *fiber.App {
	app := fiber.New()
	app.Get("/", middleware.JWTProtected(verifier), func(c *fiber.Ctx) error {
		identity, ok := middleware.CurrentIdentity(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.JSON(fiber.Map{"id": identity.ID, "email": identity.Email})
	})
	return app
}

func perform(t *testing.T, app *fiber.App, authorization string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func TestJWTProtectedAcceptsValidToken(t *testing.T) {
	app := protectedApp(auth.NewVerifier(secret))
	token := signToken(t, jwt.MapClaims{"sub": "user-1", "email": "one@campus.edu", "exp": time.Now().Add(time.Hour).Unix()})

	status, payload := perform(t, app, "bearer "+token)
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "user-1", payload["id"])
	require.Equal(t, "one@campus.edu", payload["email"])
}

func TestJWTProtectedMissingToken(t *testing.T) {
	app := protectedApp(auth.NewVerifier(secret))

	for _, header := range []string{"", "Basic dXNlcjpwYXNz", "Bearer "} {
		status, payload := perform(t, app, header)
		require.Equal(t, fiber.StatusUnauthorized, status, header)
		require.Equal(t, "Missing Bearer token", payload["detail"])
	}
}

func TestJWTProtectedInvalidToken(t *testing.T) {
	app := protectedApp(auth.NewVerifier(secret))
	expired := signToken(t, jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(-time.Hour).Unix()})

	status, payload := perform(t, app, "Bearer "+expired)
	require.Equal(t, fiber.StatusUnauthorized, status)
	require.True(t, strings.HasPrefix(payload["detail"].(string), "Invalid or expired token"))
}

func TestJWTProtectedMissingSubject(t *testing.T) {
	app := protectedApp(auth.NewVerifier(secret))
	token := signToken(t, jwt.MapClaims{"email": "anon@campus.edu"})

	status, payload := perform(t, app, "Bearer "+token)
	require.Equal(t, fiber.StatusUnauthorized, status)
	require.Equal(t, "Invalid token: missing subject", payload["detail"])
}

func TestJWTProtectedWithoutSecret(t *testing.T) {
	app := protectedApp(auth.NewVerifier(""))
	token := signToken(t, jwt.MapClaims{"sub": "user-1"})

	status, payload := perform(t, app, "Bearer "+token)
	require.Equal(t, fiber.StatusInternalServerError, status)
	require.Equal(t, "JWT secret not configured", payload["detail"])
}

func TestRequestIDPropagates(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(middleware.RequestIDFromContext(c.UserContext()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, "req-123", resp.Header.Get(middleware.RequestIDHeader))

	generated, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.NotEmpty(t, generated.Header.Get(middleware.RequestIDHeader))
}

func TestRateLimitPerIdentity(t *testing.T) {
	app := fiber.New()
	verifier := auth.NewVerifier(secret)
	app.Post("/", middleware.JWTProtected(verifier), middleware.RateLimit("test", 1, time.Minute), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	send := func(subject string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{"sub": subject}))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	require.Equal(t, fiber.StatusCreated, send("user-1"))
	require.Equal(t, fiber.StatusTooManyRequests, send("user-1"))
	require.Equal(t, fiber.StatusCreated, send("user-2"))
}
