package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request identifier in both directions.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

var requestKey = requestIDKey{}

// RequestID ensures every request carries an identifier that ends up in logs
// and in the response headers. A client supplied id is kept.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		incoming := strings.TrimSpace(fiberutils.CopyString(c.Get(RequestIDHeader)))
		if incoming == "" {
			incoming = strings.TrimSpace(fiberutils.CopyString(c.Get("X-Correlation-ID")))
		}
		if incoming == "" {
			incoming = uuid.NewString()
		}

		c.Locals("request_id", incoming)
		c.Set(RequestIDHeader, incoming)
		c.SetUserContext(ContextWithRequestID(c.UserContext(), incoming))

		return c.Next()
	}
}

// RequestIDFromContext extracts the request identifier from context, if present.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestKey).(string); ok {
		return id
	}
	return ""
}

// GetRequestID returns the identifier bound to the active request.
func GetRequestID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Locals("request_id").(string); ok {
		return id
	}
	return RequestIDFromContext(c.UserContext())
}

// ContextWithRequestID attaches the request identifier to ctx.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestKey, requestID)
}
