package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/analytics/service"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
	helperAuth "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers/auth"
)

type AnalyticsController struct {
	Analytics *service.AnalyticsService
}

func NewAnalyticsController(a *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Analytics: a}
}

// GET /analytics/funnel
func (ac *AnalyticsController) Funnel(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	report, err := ac.Analytics.Funnel(c.UserContext(), p)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(report)
}
