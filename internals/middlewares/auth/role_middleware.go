package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
	helperAuth "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers/auth"
)

// OnlyRoles must run after AuthJWT.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	if customMessage == "" {
		customMessage = "Forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		p, err := helperAuth.GetPrincipal(c)
		if err != nil {
			return helper.FromServiceError(c, err)
		}
		for _, allowed := range roles {
			if p.Role == allowed {
				return c.Next()
			}
		}
		return helper.JsonError(c, fiber.StatusForbidden, customMessage)
	}
}
