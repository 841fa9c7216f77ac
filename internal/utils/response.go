package utils

import "github.com/gofiber/fiber/v2"

// ValidationMessage is the fixed message attached to every 422 response.
const ValidationMessage = "Validation error in request data"

// ErrorResponse is the body of handler-raised errors.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationErrorResponse lists every rejected field of a request.
type ValidationErrorResponse struct {
	Detail  []ValidationDetail `json:"detail"`
	Message string             `json:"message"`
}

// InternalErrorResponse is returned for failures nobody handled.
type InternalErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// MessageResponse acknowledges operations without a record to return.
type MessageResponse struct {
	Message string `json:"message"`
}

// SendJSON writes data as the response body with the given status.
func SendJSON(c *fiber.Ctx, status int, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(data)
}

// SendMessage acknowledges a successful operation with a short message.
func SendMessage(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(MessageResponse{Message: message})
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, detail string) error {
	if detail == "" {
		detail = "error"
	}

	return c.Status(status).JSON(ErrorResponse{Detail: detail})
}

// SendValidationError rejects a request with 422 and the offending fields.
func SendValidationError(c *fiber.Ctx, details []ValidationDetail) error {
	if details == nil {
		details = []ValidationDetail{}
	}

	return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationErrorResponse{
		Detail:  details,
		Message: ValidationMessage,
	})
}

// SendInternalError reports an unhandled failure. The detail is only
// exposed when exposeDetail is set.
func SendInternalError(c *fiber.Ctx, err error, exposeDetail bool) error {
	detail := "Please contact support"
	if exposeDetail && err != nil {
		detail = err.Error()
	}

	return c.Status(fiber.StatusInternalServerError).JSON(InternalErrorResponse{
		Message: "An internal server error occurred",
		Detail:  detail,
	})
}
