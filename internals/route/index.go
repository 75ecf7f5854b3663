// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	mailRoute "github.com/GradGuide-Team/CRM-Gradguide/internals/features/mails/route"
	mailService "github.com/GradGuide-Team/CRM-Gradguide/internals/features/mails/service"
	analyticsRoute "github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/analytics/route"
	analyticsService "github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/analytics/service"
	studentRoute "github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/route"
	studentService "github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/service"
	authRoute "github.com/GradGuide-Team/CRM-Gradguide/internals/features/users/auth/route"
	authService "github.com/GradGuide-Team/CRM-Gradguide/internals/features/users/auth/service"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/middlewares"
	authMiddleware "github.com/GradGuide-Team/CRM-Gradguide/internals/middlewares/auth"
)

var startTime time.Time

// Deps are the collaborators built once in main and shared by every handler.
type Deps struct {
	DB        *gorm.DB
	Auth      *authService.AuthService
	Students  *studentService.StudentService
	Analytics *analyticsService.AnalyticsService
	Mailboxes mailService.MailboxProvisioner
	Metrics   *middlewares.Metrics
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, d.DB, d.Metrics)

	requireAuth := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Resolver:            d.Auth,
		AllowCookieFallback: false,
	})

	api := app.Group("/api/v1")

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(api, d.Auth, requireAuth)

	log.Println("[INFO] Setting up StudentRoutes...")
	studentRoute.StudentRoutes(api, d.Students, requireAuth)

	log.Println("[INFO] Setting up AnalyticsRoutes...")
	analyticsRoute.AnalyticsRoutes(api, d.Analytics, requireAuth)

	log.Println("[INFO] Setting up MailRoutes...")
	mailRoute.MailRoutes(api, d.Mailboxes, requireAuth)
}
