package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/skillpath-api/internal/models"
	"github.com/noah-isme/skillpath-api/internal/service"
	"github.com/noah-isme/skillpath-api/internal/utils"
)

// UserLookup resolves an authenticated email into the stored account.
type UserLookup interface {
	Lookup(ctx context.Context, email string) (models.User, error)
}

// RequireRole ensures that the authenticated user possesses one of the allowed roles.
// It must run after JWTProtected. Unknown accounts and role mismatches are rejected with 403.
func RequireRole(lookup UserLookup, logger zerolog.Logger, roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	log := logger.With().Str("component", "role_guard").Logger()

	return func(c *fiber.Ctx) error {
		email := UserEmail(c)
		if email == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		user, err := lookup.Lookup(c.UserContext(), email)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
			}
			log.Error().Err(err).Str("correlation_id", GetCorrelationID(c)).Msg("role lookup failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to resolve user")
		}

		if _, ok := allowed[user.Role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}

		c.Locals(LocalUser, user)
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalUserRole, user.Role)

		return c.Next()
	}
}

// CurrentUser returns the account resolved by RequireRole.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals(LocalUser).(models.User)
	return user, ok
}
