package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sabyskool/api/model"
	"github.com/sabyskool/api/utils/response"
)

// RequireCreator gates write operations on the creator role. The role comes
// from the JWT claims resolved at login; it is not re-queried per request.
func RequireCreator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := GetClaims(c)
		if !ok {
			return response.Unauthorized(c, "User not authenticated")
		}

		if model.GlobalRole(claims.GlobalRole) != model.RoleCreator {
			return response.Forbidden(c, "Creator role required")
		}

		return c.Next()
	}
}
