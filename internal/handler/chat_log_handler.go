package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/clarifyai-api/internal/dto"
	"github.com/noah-isme/clarifyai-api/internal/service"
	"github.com/noah-isme/clarifyai-api/internal/utils"
)

// ChatLogHandler serves the caller-scoped chat log endpoints. Every route
// requires authentication.
type ChatLogHandler struct {
	service service.ChatLogService
	logger  zerolog.Logger
}

// NewChatLogHandler constructs the handler.
func NewChatLogHandler(service service.ChatLogService, logger zerolog.Logger) *ChatLogHandler {
	return &ChatLogHandler{
		service: service,
		logger:  logger.With().Str("component", "chat_log_handler").Logger(),
	}
}

// Register wires chat log routes. createLimit throttles POST and may be nil.
func (h *ChatLogHandler) Register(router fiber.Router, protect fiber.Handler, createLimit fiber.Handler) {
	createChain := []fiber.Handler{protect}
	if createLimit != nil {
		createChain = append(createChain, createLimit)
	}
	createChain = append(createChain, h.create)

	router.Post("", createChain...)
	router.Get("/my-history", protect, h.history)
	router.Put("/:id/feedback", protect, h.feedback)
}

func (h *ChatLogHandler) create(c *fiber.Ctx) error {
	var payload dto.ChatLogCreateRequest
	if reqErr := bindBody(c, &payload); reqErr != nil {
		return reqErr.send(c)
	}

	log, err := h.service.Create(withRequestContext(c), currentIdentity(c), payload)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err, chatLogOp("create", ""))
	}
	return utils.SendJSON(c, fiber.StatusCreated, log)
}

func (h *ChatLogHandler) history(c *fiber.Ctx) error {
	limit, reqErr := parseLimit(c, chatLogLimits)
	if reqErr != nil {
		return reqErr.send(c)
	}

	items, err := h.service.History(withRequestContext(c), currentIdentity(c), limit)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err, chatLogOp("retrieve", ""))
	}
	return utils.SendJSON(c, fiber.StatusOK, items)
}

func (h *ChatLogHandler) feedback(c *fiber.Ctx) error {
	id, reqErr := uuidParam(c, "log_id")
	if reqErr != nil {
		return reqErr.send(c)
	}
	var payload dto.ChatLogFeedbackRequest
	if reqErr := bindBody(c, &payload); reqErr != nil {
		return reqErr.send(c)
	}

	op := chatLogOp("update", id)
	op.failure = "Failed to update feedback"

	log, err := h.service.Feedback(withRequestContext(c), currentIdentity(c), id, payload)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err, op)
	}
	return utils.SendJSON(c, fiber.StatusOK, log)
}
