package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/skillpath-api/internal/service"
	"github.com/noah-isme/skillpath-api/internal/utils"
)

// UploadHandler handles image uploads.
type UploadHandler struct {
	service service.UploadService
	logger  zerolog.Logger
}

// NewUploadHandler constructs the handler.
func NewUploadHandler(service service.UploadService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		logger:  logger.With().Str("component", "upload_handler").Logger(),
	}
}

// Register attaches upload endpoints.
func (h *UploadHandler) Register(router fiber.Router, guards Guards) {
	router.Post("/uploads/images", guards.authenticated(), h.uploadImage)
}

func (h *UploadHandler) uploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "image file is required")
	}

	result, err := h.service.UploadImage(c.UserContext(), file)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendCreated(c, "image uploaded", result)
}
