package handler

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/clarifyai-api/internal/auth"
	"github.com/noah-isme/clarifyai-api/internal/middleware"
	"github.com/noah-isme/clarifyai-api/internal/utils"
)

// limitRange bounds a "limit" query parameter.
type limitRange struct {
	min, max, fallback int
}

var (
	faqLimits          = limitRange{min: 1, max: 500, fallback: 100}
	announcementLimits = limitRange{min: 1, max: 200, fallback: 50}
	chatLogLimits      = limitRange{min: 1, max: 200, fallback: 50}
)

// requestError is a rejected body, query or path input, rendered as a 422.
type requestError struct {
	detail utils.ValidationDetail
}

func (e *requestError) Error() string {
	return e.detail.Msg
}

func (e *requestError) send(c *fiber.Ctx) error {
	return utils.SendValidationError(c, []utils.ValidationDetail{e.detail})
}

func parseQueryInt(c *fiber.Ctx, key string) (int, bool, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, false, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, true, err
	}
	return parsed, true, nil
}

func parseLimit(c *fiber.Ctx, bounds limitRange) (int, *requestError) {
	limit, present, err := parseQueryInt(c, "limit")
	if err != nil {
		return 0, &requestError{utils.FieldDetail("query", "limit", "Input should be a valid integer, unable to parse string as an integer", "int_parsing")}
	}
	if !present {
		return bounds.fallback, nil
	}
	if limit < bounds.min {
		return 0, &requestError{utils.FieldDetail("query", "limit", "Input should be greater than or equal to "+strconv.Itoa(bounds.min), "greater_than_equal")}
	}
	if limit > bounds.max {
		return 0, &requestError{utils.FieldDetail("query", "limit", "Input should be less than or equal to "+strconv.Itoa(bounds.max), "less_than_equal")}
	}
	return limit, nil
}

// parseQueryBool accepts the usual spellings of true and false.
func parseQueryBool(c *fiber.Ctx, key string, fallback bool) (bool, *requestError) {
	value := strings.ToLower(strings.TrimSpace(c.Query(key)))
	switch value {
	case "":
		return fallback, nil
	case "true", "t", "1", "yes", "y", "on":
		return true, nil
	case "false", "f", "0", "no", "n", "off":
		return false, nil
	default:
		return false, &requestError{utils.FieldDetail("query", key, "Input should be a valid boolean, unable to interpret input", "bool_parsing")}
	}
}

// uuidParam returns the canonical form of the ":id" route parameter.
// locName is the field name reported in a validation error.
func uuidParam(c *fiber.Ctx, locName string) (string, *requestError) {
	parsed, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return "", &requestError{utils.FieldDetail("path", locName, "Input should be a valid UUID", "uuid_parsing")}
	}
	return parsed.String(), nil
}

// bindBody decodes a JSON body; any decode failure is a 422.
func bindBody(c *fiber.Ctx, dest interface{}) *requestError {
	if err := c.BodyParser(dest); err != nil {
		return &requestError{utils.ValidationDetail{Loc: []string{"body"}, Msg: "JSON decode error", Type: "json_invalid"}}
	}
	return nil
}

func currentIdentity(c *fiber.Ctx) auth.Identity {
	identity, _ := middleware.CurrentIdentity(c)
	return identity
}

func withRequestContext(c *fiber.Ctx) context.Context {
	return middleware.ContextWithRequestID(c.UserContext(), middleware.GetRequestID(c))
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if requestID := middleware.GetRequestID(c); requestID != "" {
			logger = base.With().Str("request_id", requestID).Logger()
		}
	}
	return &logger
}
