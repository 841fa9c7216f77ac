package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/clarifyai-api/internal/dto"
	"github.com/noah-isme/clarifyai-api/internal/models"
	"github.com/noah-isme/clarifyai-api/internal/service"
	"github.com/noah-isme/clarifyai-api/internal/utils"
)

// FAQHandler serves the FAQ endpoints.
type FAQHandler struct {
	service service.FAQService
	logger  zerolog.Logger
}

// NewFAQHandler constructs the handler.
func NewFAQHandler(service service.FAQService, logger zerolog.Logger) *FAQHandler {
	return &FAQHandler{
		service: service,
		logger:  logger.With().Str("component", "faq_handler").Logger(),
	}
}

// Register wires FAQ routes. Reads are public; writes run behind protect.
func (h *FAQHandler) Register(router fiber.Router, protect fiber.Handler) {
	router.Get("", h.list)
	router.Get("/category/:category", h.listByCategory)
	router.Get("/:id", h.get)
	router.Post("", protect, h.create)
	router.Put("/:id", protect, h.update)
	router.Delete("/:id", protect, h.delete)
}

func (h *FAQHandler) list(c *fiber.Ctx) error {
	limit, reqErr := parseLimit(c, faqLimits)
	if reqErr != nil {
		return reqErr.send(c)
	}

	items, err := h.service.List(withRequestContext(c), dto.FAQListQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Limit:    limit,
	})
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err, faqOp("list", ""))
	}
	return utils.SendJSON(c, fiber.StatusOK, items)
}

func (h *FAQHandler) listByCategory(c *fiber.Ctx) error {
	category := models.FAQCategory(c.Params("category"))
	if !category.Valid() {
		return utils.SendValidationError(c, []utils.ValidationDetail{
			utils.FieldDetail("path", "category", "Input should be a valid FAQ category", "enum"),
		})
	}
	limit, reqErr := parseLimit(c, faqLimits)
	if reqErr != nil {
		return reqErr.send(c)
	}

	items, err := h.service.List(withRequestContext(c), dto.FAQListQuery{Category: string(category), Limit: limit})
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err, faqOp("list", ""))
	}
	return utils.SendJSON(c, fiber.StatusOK, items)
}

func (h *FAQHandler) get(c *fiber.Ctx) error {
	id, reqErr := uuidParam(c, "faq_id")
	if reqErr != nil {
		return reqErr.send(c)
	}

	faq, err := h.service.Get(withRequestContext(c), id)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err, faqOp("retrieve", id))
	}
	return utils.SendJSON(c, fiber.StatusOK, faq)
}

func (h *FAQHandler) create(c *fiber.Ctx) error {
	var payload dto.FAQCreateRequest
	if reqErr := bindBody(c, &payload); reqErr != nil {
		return reqErr.send(c)
	}

	faq, err := h.service.Create(withRequestContext(c), currentIdentity(c), payload)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err, faqOp("create", ""))
	}
	return utils.SendJSON(c, fiber.StatusCreated, faq)
}

func (h *FAQHandler) update(c *fiber.Ctx) error {
	id, reqErr := uuidParam(c, "faq_id")
	if reqErr != nil {
		return reqErr.send(c)
	}
	var payload dto.FAQUpdateRequest
	if reqErr := bindBody(c, &payload); reqErr != nil {
		return reqErr.send(c)
	}

	faq, err := h.service.Update(withRequestContext(c), currentIdentity(c), id, payload)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err, faqOp("update", id))
	}
	return utils.SendJSON(c, fiber.StatusOK, faq)
}

func (h *FAQHandler) delete(c *fiber.Ctx) error {
	id, reqErr := uuidParam(c, "faq_id")
	if reqErr != nil {
		return reqErr.send(c)
	}

	if err := h.service.Delete(withRequestContext(c), currentIdentity(c), id); err != nil {
		return respondError(c, requestLogger(h.logger, c), err, faqOp("delete", id))
	}
	return utils.SendMessage(c, "FAQ deleted successfully")
}
