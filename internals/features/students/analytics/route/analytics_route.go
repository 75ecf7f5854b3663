package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/analytics/controller"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/analytics/service"
)

func AnalyticsRoutes(api fiber.Router, analytics *service.AnalyticsService, requireAuth fiber.Handler) {
	ctl := controller.NewAnalyticsController(analytics)

	g := api.Group("/analytics", requireAuth)
	g.Get("/funnel", ctl.Funnel)
}
