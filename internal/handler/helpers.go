package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/skillpath-api/internal/dto"
	"github.com/noah-isme/skillpath-api/internal/middleware"
	"github.com/noah-isme/skillpath-api/internal/models"
	"github.com/noah-isme/skillpath-api/internal/service"
	"github.com/noah-isme/skillpath-api/internal/utils"
)

// Guards carries the auth middlewares routes are composed with.
type Guards struct {
	// JWT verifies the bearer token and binds the caller's email.
	JWT fiber.Handler
	// Role builds a role guard. It must run after JWT.
	Role func(roles ...models.Role) fiber.Handler
	// PaymentIntentLimit throttles payment intent creation per caller.
	PaymentIntentLimit fiber.Handler
}

func (g Guards) authenticated() fiber.Handler {
	if g.JWT == nil {
		return passThrough
	}
	return g.JWT
}

func (g Guards) as(roles ...models.Role) fiber.Handler {
	if g.Role == nil {
		return passThrough
	}
	return g.Role(roles...)
}

func (g Guards) member() fiber.Handler {
	return g.as(models.RoleStudent, models.RoleTeacher, models.RoleAdmin)
}

func (g Guards) intentLimit() fiber.Handler {
	if g.PaymentIntentLimit == nil {
		return passThrough
	}
	return g.PaymentIntentLimit
}

func passThrough(c *fiber.Ctx) error {
	return c.Next()
}

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	raw := strings.TrimSpace(c.Params(key))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(value), nil
}

// parsePageRequest accepts page/perPage and the currentPage/itemsPerPage aliases.
func parsePageRequest(c *fiber.Ctx) dto.PageRequest {
	page := c.Query("page")
	if page == "" {
		page = c.Query("currentPage")
	}
	perPage := c.Query("perPage")
	if perPage == "" {
		perPage = c.Query("itemsPerPage")
	}
	return dto.ParsePageRequest(page, perPage)
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// serviceErrorStatus maps domain sentinels onto HTTP statuses. Unknown errors are internal.
func serviceErrorStatus(err error) int {
	switch {
	case isValidationError(err):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrApplicationNotFound),
		errors.Is(err, service.ErrClassNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrEnrollmentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotClassOwner),
		errors.Is(err, service.ErrNotEnrolled):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrPendingApplicationExists),
		errors.Is(err, service.ErrAlreadyDecided):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrApplicantMismatch),
		errors.Is(err, service.ErrEmptyFeedback),
		errors.Is(err, service.ErrInvalidDeadline),
		errors.Is(err, service.ErrAssignmentClosed),
		errors.Is(err, service.ErrUploadMissing):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrUploadTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrUploadTypeNotAllowed):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, service.ErrUploadStorageUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, service.ErrPaymentRejected):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrPaymentGateway):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the envelope for a service failure, logging anything internal.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", utils.ValidationDetails(validationErrors))
	}

	status := serviceErrorStatus(err)
	if status >= fiber.StatusInternalServerError && status != fiber.StatusBadGateway && status != fiber.StatusServiceUnavailable {
		requestLogger(logger, c).Error().Err(err).Str("route", c.Route().Path).Msg("request failed")
		return utils.SendError(c, status, "internal server error")
	}
	if status == fiber.StatusBadGateway {
		requestLogger(logger, c).Warn().Err(err).Msg("upstream dependency failed")
	}
	return utils.SendError(c, status, err.Error())
}
