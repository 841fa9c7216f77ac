package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/clarifyai-api/internal/dto"
	"github.com/noah-isme/clarifyai-api/internal/models"
	"github.com/noah-isme/clarifyai-api/internal/service"
	"github.com/noah-isme/clarifyai-api/internal/utils"
)

// AnnouncementHandler serves the announcement endpoints.
type AnnouncementHandler struct {
	service service.AnnouncementService
	logger  zerolog.Logger
}

// NewAnnouncementHandler constructs the handler.
func NewAnnouncementHandler(service service.AnnouncementService, logger zerolog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		service: service,
		logger:  logger.With().Str("component", "announcement_handler").Logger(),
	}
}

// Register wires announcement routes. Reads are public; writes run behind protect.
func (h *AnnouncementHandler) Register(router fiber.Router, protect fiber.Handler) {
	router.Get("", h.list)
	router.Get("/category/:category", h.listByCategory)
	router.Get("/:id", h.get)
	router.Post("", protect, h.create)
	router.Put("/:id", protect, h.update)
	router.Delete("/:id", protect, h.delete)
}

func (h *AnnouncementHandler) list(c *fiber.Ctx) error {
	upcoming, reqErr := parseQueryBool(c, "upcoming_only", true)
	if reqErr != nil {
		return reqErr.send(c)
	}
	limit, reqErr := parseLimit(c, announcementLimits)
	if reqErr != nil {
		return reqErr.send(c)
	}

	items, err := h.service.List(withRequestContext(c), dto.AnnouncementListQuery{
		UpcomingOnly: upcoming,
		Category:     c.Query("category"),
		Limit:        limit,
	})
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err, announcementOp("list", ""))
	}
	return utils.SendJSON(c, fiber.StatusOK, items)
}

// listByCategory includes past announcements.
func (h *AnnouncementHandler) listByCategory(c *fiber.Ctx) error {
	category := models.AnnouncementCategory(c.Params("category"))
	if !category.Valid() {
		return utils.SendValidationError(c, []utils.ValidationDetail{
			utils.FieldDetail("path", "category", "Input should be a valid announcement category", "enum"),
		})
	}
	limit, reqErr := parseLimit(c, announcementLimits)
	if reqErr != nil {
		return reqErr.send(c)
	}

	items, err := h.service.List(withRequestContext(c), dto.AnnouncementListQuery{Category: string(category), Limit: limit})
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err, announcementOp("list", ""))
	}
	return utils.SendJSON(c, fiber.StatusOK, items)
}

func (h *AnnouncementHandler) get(c *fiber.Ctx) error {
	id, reqErr := uuidParam(c, "announcement_id")
	if reqErr != nil {
		return reqErr.send(c)
	}

	item, err := h.service.Get(withRequestContext(c), id)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err, announcementOp("retrieve", id))
	}
	return utils.SendJSON(c, fiber.StatusOK, item)
}

func (h *AnnouncementHandler) create(c *fiber.Ctx) error {
	var payload dto.AnnouncementCreateRequest
	if reqErr := bindBody(c, &payload); reqErr != nil {
		return reqErr.send(c)
	}

	item, err := h.service.Create(withRequestContext(c), currentIdentity(c), payload)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err, announcementOp("create", ""))
	}
	return utils.SendJSON(c, fiber.StatusCreated, item)
}

func (h *AnnouncementHandler) update(c *fiber.Ctx) error {
	id, reqErr := uuidParam(c, "announcement_id")
	if reqErr != nil {
		return reqErr.send(c)
	}
	var payload dto.AnnouncementUpdateRequest
	if reqErr := bindBody(c, &payload); reqErr != nil {
		return reqErr.send(c)
	}

	item, err := h.service.Update(withRequestContext(c), currentIdentity(c), id, payload)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err, announcementOp("update", id))
	}
	return utils.SendJSON(c, fiber.StatusOK, item)
}

func (h *AnnouncementHandler) delete(c *fiber.Ctx) error {
	id, reqErr := uuidParam(c, "announcement_id")
	if reqErr != nil {
		return reqErr.send(c)
	}

	if err := h.service.Delete(withRequestContext(c), currentIdentity(c), id); err != nil {
		return respondError(c, requestLogger(h.logger, c), err, announcementOp("delete", id))
	}
	return utils.SendMessage(c, "Announcement deleted successfully")
}
