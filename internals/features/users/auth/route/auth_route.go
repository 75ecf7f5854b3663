// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/users/auth/controller"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/users/auth/service"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/middlewares"
)

// AuthRoutes mounts /auth under api. requireAuth guards /me.
func AuthRoutes(api fiber.Router, auth *service.AuthService, requireAuth fiber.Handler) {
	ctl := controller.NewAuthController(auth)

	g := api.Group("/auth")
	g.Post("/signup", middlewares.RegisterRateLimiter(), ctl.Signup)
	g.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	g.Get("/me", requireAuth, ctl.Me)
}
