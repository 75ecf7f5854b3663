package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// FiberErrorHandler is installed as fiber.Config.ErrorHandler so errors
// returned from handlers and middleware share one envelope.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			log.Printf("[ERROR] reqid=%v %s %s: %v", c.Locals("reqid"), c.Method(), c.OriginalURL(), fe.Message)
			return JsonError(c, fe.Code, "Internal server error")
		}
		return JsonError(c, fe.Code, fe.Message)
	}
	return FromServiceError(c, err)
}
