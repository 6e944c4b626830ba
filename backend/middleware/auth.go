package middleware

import (
	"courseforge/backend/config"
	"courseforge/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the JWT once per request and stores the user id
// and role claims in locals for downstream handlers.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, role, err := utils.ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals("userId", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

// RequireRole allows the request through only when the token's role claim is
// one of the listed roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return utils.Unauthorized(c, "Unauthorized")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return utils.Forbidden(c, "Insufficient role")
	}
}
