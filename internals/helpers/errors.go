// file: internals/helpers/errors.go
package helper

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrOutOfRange   = errors.New("index out of range")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUnavailable  = errors.New("service unavailable")
)

// AppError carries a caller facing message on top of one of the kinds above.
type AppError struct {
	Kind error
	Msg  string
}

func (e *AppError) Error() string { return e.Msg }
func (e *AppError) Unwrap() error { return e.Kind }

// Errorf builds an AppError; errors.Is(err, kind) holds for the result.
func Errorf(kind error, format string, args ...any) error {
	return &AppError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// StatusOf maps an error kind onto its HTTP status. Unknown errors are 500.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrOutOfRange):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, ErrUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// FromServiceError writes the standard error envelope for err.
// Internal failures are logged with the request id and replaced by a generic message.
func FromServiceError(c *fiber.Ctx, err error) error {
	status := StatusOf(err)
	if status >= fiber.StatusInternalServerError && status != fiber.StatusServiceUnavailable {
		log.Printf("[ERROR] reqid=%v %s %s: %v", c.Locals("reqid"), c.Method(), c.OriginalURL(), err)
		return JsonError(c, status, "Internal server error")
	}
	return JsonError(c, status, err.Error())
}
