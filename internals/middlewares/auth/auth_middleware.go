// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
	helperAuth "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers/auth"
)

// PrincipalResolver verifies a bearer token and loads the acting user.
type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) (helperAuth.Principal, error)
}

type AuthJWTOpts struct {
	Resolver            PrincipalResolver
	AllowCookieFallback bool
}

// AuthJWT rejects the request with 401 unless a valid token for an existing user is present.
func AuthJWT(opts AuthJWTOpts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c, opts.AllowCookieFallback)
		if err != nil {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		p, err := opts.Resolver.Resolve(c.UserContext(), tokenString)
		if err != nil {
			status := helper.StatusOf(err)
			if status == fiber.StatusUnauthorized {
				c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			}
			if status >= fiber.StatusInternalServerError {
				log.Printf("[ERROR] reqid=%v auth resolve: %v", c.Locals("reqid"), err)
			}
			return helper.FromServiceError(c, err)
		}

		helperAuth.SetPrincipal(c, p)
		return c.Next()
	}
}
