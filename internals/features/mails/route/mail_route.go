package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/mails/controller"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/mails/service"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/constants"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/middlewares"
	authMiddleware "github.com/GradGuide-Team/CRM-Gradguide/internals/middlewares/auth"
)

func MailRoutes(api fiber.Router, mailboxes service.MailboxProvisioner, requireAuth fiber.Handler) {
	ctl := controller.NewMailController(mailboxes)

	g := api.Group("/mails", requireAuth)
	g.Post("/inboxes", middlewares.MailboxRateLimiter(), ctl.CreateInbox)
	g.Get("/verify-domain", authMiddleware.OnlyRoles(constants.RoleErrorAdmin("domain verification"), constants.AdminOnly...), ctl.VerifyDomain)
}
