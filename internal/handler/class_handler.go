package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/skillpath-api/internal/dto"
	"github.com/noah-isme/skillpath-api/internal/middleware"
	"github.com/noah-isme/skillpath-api/internal/models"
	"github.com/noah-isme/skillpath-api/internal/service"
	"github.com/noah-isme/skillpath-api/internal/utils"
)

// ClassHandler wires class catalogue routes.
type ClassHandler struct {
	classes   service.ClassService
	approvals service.ApprovalService
	logger    zerolog.Logger
}

// NewClassHandler constructs the handler.
func NewClassHandler(classes service.ClassService, approvals service.ApprovalService, logger zerolog.Logger) *ClassHandler {
	return &ClassHandler{
		classes:   classes,
		approvals: approvals,
		logger:    logger.With().Str("component", "class_handler").Logger(),
	}
}

// Register attaches class endpoints. Static segments are registered before /classes/:id.
func (h *ClassHandler) Register(router fiber.Router, guards Guards) {
	router.Get("/classes", h.listPublished)
	router.Get("/classes/all", guards.authenticated(), guards.as(models.RoleAdmin), h.listAll)
	router.Get("/classes/mine", guards.authenticated(), guards.as(models.RoleTeacher), h.listMine)
	router.Get("/classes/:id", h.get)
	router.Post("/classes", guards.authenticated(), guards.as(models.RoleTeacher), h.create)
	router.Put("/classes/:id", guards.authenticated(), guards.as(models.RoleTeacher), h.update)
	router.Patch("/classes/:id", guards.authenticated(), guards.as(models.RoleAdmin), h.decide)
	router.Delete("/classes/:id", guards.authenticated(), guards.as(models.RoleTeacher, models.RoleAdmin), h.delete)
}

func (h *ClassHandler) listPublished(c *fiber.Ctx) error {
	result, err := h.classes.ListPublished(c.UserContext(), parsePageRequest(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.OK(c, result.Items, "classes retrieved", result.Pagination)
}

func (h *ClassHandler) listAll(c *fiber.Ctx) error {
	req := dto.ClassListRequest{Page: parsePageRequest(c)}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, ok := parseStatusFilter(raw)
		if !ok {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid status filter")
		}
		req.Status = &status
	}

	result, err := h.classes.List(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.OK(c, result.Items, "classes retrieved", result.Pagination)
}

func (h *ClassHandler) listMine(c *fiber.Ctx) error {
	teacher, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	result, err := h.classes.ListMine(c.UserContext(), teacher, parsePageRequest(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.OK(c, result.Items, "classes retrieved", result.Pagination)
}

func (h *ClassHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	class, err := h.classes.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "class retrieved", class)
}

func (h *ClassHandler) create(c *fiber.Ctx) error {
	teacher, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.ClassCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	class, err := h.classes.Create(c.UserContext(), teacher, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendCreated(c, "class created", class)
}

func (h *ClassHandler) update(c *fiber.Ctx) error {
	teacher, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ClassUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	class, err := h.classes.Update(c.UserContext(), teacher, id, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "class updated", class)
}

func (h *ClassHandler) decide(c *fiber.Ctx) error {
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.DecisionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	class, err := h.approvals.DecideClass(c.UserContext(), admin, id, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "class decided", class)
}

func (h *ClassHandler) delete(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.classes.Delete(c.UserContext(), actor, id); err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "class deleted", fiber.Map{"id": id})
}

func parseStatusFilter(raw string) (models.ApprovalStatus, bool) {
	if strings.EqualFold(raw, string(models.StatusPending)) {
		return models.StatusPending, true
	}
	return models.ParseDecision(raw)
}
