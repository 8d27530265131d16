package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/skillpath-api/internal/auth"
	"github.com/noah-isme/skillpath-api/internal/utils"
)

// Locals keys populated by the auth middlewares.
const (
	LocalUserEmail   = "user_email"
	LocalTokenClaims = "token_claims"
	LocalUser        = "user"
	LocalUserID      = "user_id"
	LocalUserRole    = "user_role"
)

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (auth.Claims, error)
}

// JWTProtected returns a middleware that validates JWT bearer tokens. Any failure ends the
// request with 401 before the next handler runs. Failures other than a bad token, such as an
// unreachable denylist, are logged.
func JWTProtected(verifier TokenVerifier, logger zerolog.Logger) fiber.Handler {
	logger = logger.With().Str("component", "jwt_middleware").Logger()

	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if len(authorization) < len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, err := verifier.Verify(c.UserContext(), tokenString)
		if err != nil {
			if !errors.Is(err, auth.ErrUnauthorized) {
				logger.Error().Err(err).Str("correlation_id", GetCorrelationID(c)).Str("path", c.Path()).Msg("token verification failed")
			}
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(LocalUserEmail, claims.Email)
		c.Locals(LocalTokenClaims, claims)

		return c.Next()
	}
}

// UserEmail returns the verified email bound to the request.
func UserEmail(c *fiber.Ctx) string {
	if value, ok := c.Locals(LocalUserEmail).(string); ok {
		return value
	}
	return ""
}

// TokenClaims returns the verified claims bound to the request.
func TokenClaims(c *fiber.Ctx) (auth.Claims, bool) {
	claims, ok := c.Locals(LocalTokenClaims).(auth.Claims)
	return claims, ok
}
