package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/clarifyai-api/internal/config"
	"github.com/noah-isme/clarifyai-api/internal/middleware"
	"github.com/noah-isme/clarifyai-api/internal/utils"
)

// ErrorHandler shapes errors that escape the handlers, including recovered
// panics. Internal error text is only shown outside production.
func ErrorHandler(cfg config.Config, logger zerolog.Logger) fiber.ErrorHandler {
	logger = logger.With().Str("component", "error_handler").Logger()
	exposeDetail := !cfg.IsProduction()

	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code != fiber.StatusInternalServerError {
			if fiberErr.Code == fiber.StatusNotFound {
				return utils.SendError(c, fiberErr.Code, "Not Found")
			}
			return utils.SendError(c, fiberErr.Code, fiberErr.Message)
		}

		logger.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("unhandled exception")
		return utils.SendInternalError(c, err, exposeDetail)
	}
}
