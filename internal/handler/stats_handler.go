package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/skillpath-api/internal/middleware"
	"github.com/noah-isme/skillpath-api/internal/models"
	"github.com/noah-isme/skillpath-api/internal/service"
	"github.com/noah-isme/skillpath-api/internal/utils"
)

// StatsHandler exposes the aggregate endpoints.
type StatsHandler struct {
	service service.StatsService
	logger  zerolog.Logger
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(service service.StatsService, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		service: service,
		logger:  logger.With().Str("component", "stats_handler").Logger(),
	}
}

// Register attaches aggregate endpoints.
func (h *StatsHandler) Register(router fiber.Router, guards Guards) {
	router.Get("/impact", h.impact)
	router.Get("/popular", h.popular)
	router.Get("/popularClasses", h.popularClasses)
	router.Get("/classInfo/:id", guards.authenticated(), guards.as(models.RoleTeacher, models.RoleAdmin), h.classInfo)
}

func (h *StatsHandler) impact(c *fiber.Ctx) error {
	impact, err := h.service.Impact(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "impact retrieved", impact)
}

func (h *StatsHandler) popular(c *fiber.Ctx) error {
	classes, err := h.service.Popular(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "popular classes retrieved", classes)
}

func (h *StatsHandler) popularClasses(c *fiber.Ctx) error {
	classes, err := h.service.PopularClasses(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "popular classes retrieved", classes)
}

func (h *StatsHandler) classInfo(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	info, err := h.service.ClassInfo(c.UserContext(), actor, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "class info retrieved", info)
}
