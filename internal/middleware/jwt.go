package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/flite-pay/flite/internal/auth"
	"github.com/flite-pay/flite/internal/config"
	"github.com/flite-pay/flite/internal/identity"
)

// JWTAuth returns a middleware that validates JWT access tokens and resolves
// the authenticated user.
func JWTAuth(cfg config.Config, repo identity.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])
		claims, err := auth.ParseAndVerifyHS256(tokenStr, []byte(cfg.JWTSecret))
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}
		if expFloat, ok := claims["exp"].(float64); !ok || time.Now().Unix() >= int64(expFloat) {
			return fiber.NewError(http.StatusUnauthorized, "token expired")
		}
		sub, _ := claims["sub"].(string)

		if _, err := repo.FindByID(c.UserContext(), sub); err != nil {
			return fiber.NewError(http.StatusUnauthorized, "user not found")
		}

		c.Locals("user_id", sub)
		return c.Next()
	}
}
