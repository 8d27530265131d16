package handler

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/skillpath-api/internal/auth"
	"github.com/noah-isme/skillpath-api/internal/dto"
	"github.com/noah-isme/skillpath-api/internal/middleware"
	"github.com/noah-isme/skillpath-api/internal/utils"
)

// TokenIssuer issues and revokes session tokens.
type TokenIssuer interface {
	Issue(email string) (string, time.Time, error)
	Revoke(ctx context.Context, claims auth.Claims) error
}

// AuthHandler exposes session token endpoints.
type AuthHandler struct {
	tokens    TokenIssuer
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(tokens TokenIssuer, validate *validator.Validate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		tokens:    tokens,
		validator: validate,
		logger:    logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches token endpoints.
func (h *AuthHandler) Register(router fiber.Router, guards Guards) {
	router.Post("/jwt", h.issue)
	router.Post("/logout", guards.authenticated(), h.logout)
}

func (h *AuthHandler) issue(c *fiber.Ctx) error {
	var payload dto.TokenRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	payload.Email = strings.TrimSpace(payload.Email)
	if err := h.validator.Struct(payload); err != nil {
		return respondError(c, h.logger, err)
	}

	token, expiresAt, err := h.tokens.Issue(payload.Email)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "token issued", dto.TokenResponse{Token: token, ExpiresAt: expiresAt})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	claims, ok := middleware.TokenClaims(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	if err := h.tokens.Revoke(c.UserContext(), claims); err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "logged out", nil)
}
