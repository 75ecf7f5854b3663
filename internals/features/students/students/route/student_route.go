// file: internals/features/students/students/route/student_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/controller"
	"github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/service"
)

// StudentRoutes mounts /students. Every route sits behind requireAuth.
func StudentRoutes(api fiber.Router, students *service.StudentService, requireAuth fiber.Handler) {
	ctl := controller.NewStudentController(students)

	g := api.Group("/students", requireAuth)
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)

	g.Put("/:id/application-status", ctl.UpdateApplicationStatus)
	g.Post("/:id/university-notes/:index", ctl.AddUniversityNote)
	g.Post("/:id/overview-notes", ctl.AddOverviewNote)
}
