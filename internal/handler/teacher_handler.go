package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/skillpath-api/internal/dto"
	"github.com/noah-isme/skillpath-api/internal/middleware"
	"github.com/noah-isme/skillpath-api/internal/models"
	"github.com/noah-isme/skillpath-api/internal/service"
	"github.com/noah-isme/skillpath-api/internal/utils"
)

// TeacherHandler wires teacher application routes.
type TeacherHandler struct {
	teachers  service.TeacherService
	approvals service.ApprovalService
	logger    zerolog.Logger
}

// NewTeacherHandler constructs the handler.
func NewTeacherHandler(teachers service.TeacherService, approvals service.ApprovalService, logger zerolog.Logger) *TeacherHandler {
	return &TeacherHandler{
		teachers:  teachers,
		approvals: approvals,
		logger:    logger.With().Str("component", "teacher_handler").Logger(),
	}
}

// Register attaches teacher application endpoints.
func (h *TeacherHandler) Register(router fiber.Router, guards Guards) {
	router.Post("/teachers", guards.authenticated(), guards.member(), h.apply)
	router.Get("/teachers", guards.authenticated(), guards.as(models.RoleAdmin), h.list)
	router.Get("/teachers/:email", guards.authenticated(), h.getByEmail)
	router.Patch("/teachers/:id", guards.authenticated(), guards.as(models.RoleAdmin), h.decide)
}

func (h *TeacherHandler) apply(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.TeacherApplicationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	application, err := h.teachers.Apply(c.UserContext(), user, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendCreated(c, "teacher application submitted", application)
}

func (h *TeacherHandler) list(c *fiber.Ctx) error {
	result, err := h.teachers.List(c.UserContext(), parsePageRequest(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.OK(c, result.Items, "teacher applications retrieved", result.Pagination)
}

func (h *TeacherHandler) getByEmail(c *fiber.Ctx) error {
	application, err := h.teachers.GetByEmail(c.UserContext(), c.Params("email"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "teacher application retrieved", application)
}

func (h *TeacherHandler) decide(c *fiber.Ctx) error {
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

	application, err := h.approvals.DecideApplication(c.UserContext(), admin, id, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "teacher application decided", application)
}
