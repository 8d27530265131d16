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

// PaymentHandler wires payment and enrollment routes.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler constructs the handler.
func NewPaymentHandler(service service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("component", "payment_handler").Logger(),
	}
}

// Register attaches payment endpoints. All of them are Student only.
func (h *PaymentHandler) Register(router fiber.Router, guards Guards) {
	student := []fiber.Handler{guards.authenticated(), guards.as(models.RoleStudent)}

	router.Post("/payment-intent", append(student, guards.intentLimit(), h.createIntent)...)
	router.Post("/payment", append(student, h.record)...)
	router.Patch("/payment/:classId", append(student, h.updateEnrollment)...)
	router.Get("/myEnrolled/:email", append(student, h.myEnrolled)...)
}

func (h *PaymentHandler) createIntent(c *fiber.Ctx) error {
	var payload dto.PaymentIntentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	intent, err := h.service.CreateIntent(c.UserContext(), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "payment intent created", intent)
}

func (h *PaymentHandler) record(c *fiber.Ctx) error {
	student, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.PaymentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	payment, err := h.service.Record(c.UserContext(), student, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendCreated(c, "payment recorded", payment)
}

func (h *PaymentHandler) updateEnrollment(c *fiber.Ctx) error {
	classID, err := parseUintParam(c, "classId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.EnrollmentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	payment, err := h.service.UpdateEnrollment(c.UserContext(), classID, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "enrollment updated", payment)
}

func (h *PaymentHandler) myEnrolled(c *fiber.Ctx) error {
	student, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	email := strings.TrimSpace(c.Params("email"))
	if !strings.EqualFold(email, student.Email) {
		return utils.SendError(c, fiber.StatusForbidden, "cannot read another student's enrollments")
	}

	classes, err := h.service.MyEnrolled(c.UserContext(), email)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "enrolled classes retrieved", classes)
}
