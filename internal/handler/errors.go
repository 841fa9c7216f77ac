package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/clarifyai-api/internal/repository"
	"github.com/noah-isme/clarifyai-api/internal/service"
	"github.com/noah-isme/clarifyai-api/internal/utils"
)

// operation names what a handler was doing, for error messages.
type operation struct {
	kind     string
	verb     string
	notFound string
	failure  string
}

func faqOp(verb, id string) operation {
	return operation{
		kind:     "FAQ",
		verb:     verb,
		notFound: fmt.Sprintf("FAQ with ID %s not found", id),
	}
}

func announcementOp(verb, id string) operation {
	return operation{
		kind:     "announcement",
		verb:     verb,
		notFound: fmt.Sprintf("Announcement with ID %s not found", id),
	}
}

func chatLogOp(verb, id string) operation {
	return operation{
		kind:     "chat log",
		verb:     verb,
		notFound: fmt.Sprintf("Chat log with ID %s not found or you don't have access to it", id),
	}
}

func (o operation) failureMessage() string {
	if o.failure != "" {
		return o.failure
	}
	return fmt.Sprintf("Failed to %s %s. Please try again.", o.verb, o.kind)
}

// respondError maps service and store errors onto HTTP responses.
func respondError(c *fiber.Ctx, logger *zerolog.Logger, err error, op operation) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return utils.SendValidationError(c, utils.ValidationDetails("body", err))
	}

	var fieldErr *service.FieldError
	if errors.As(err, &fieldErr) {
		return utils.SendValidationError(c, []utils.ValidationDetail{fieldDetail(fieldErr)})
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return utils.SendError(c, fiber.StatusNotFound, op.notFound)
	case errors.Is(err, service.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, fmt.Sprintf("You are not authorized to %s this %s", op.verb, op.kind))
	case errors.Is(err, service.ErrChatLogIdentityMismatch):
		return utils.SendError(c, fiber.StatusForbidden, "Cannot create chat log for another user")
	case errors.Is(err, service.ErrNoFieldsToUpdate):
		return utils.SendError(c, fiber.StatusBadRequest, "No fields to update")
	}

	logger.Error().Err(err).Str("kind", op.kind).Str("verb", op.verb).Msg("request failed")
	return utils.SendError(c, fiber.StatusInternalServerError, op.failureMessage())
}

func fieldDetail(err *service.FieldError) utils.ValidationDetail {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		return utils.FieldDetail("body", err.Field, "Input should be a valid datetime", "datetime_parsing")
	case errors.Is(err, service.ErrEmptyContent):
		return utils.FieldDetail("body", err.Field, "Value contains no permitted content", "value_error")
	case errors.Is(err, service.ErrContentTooLong):
		return utils.FieldDetail("body", err.Field, "Value is too long once markup is cleaned", "string_too_long")
	default:
		return utils.FieldDetail("body", err.Field, err.Err.Error(), "value_error")
	}
}
