package middleware

import (
	"errors"
	"log"

	customErrors "github.com/abisalde/povertyline-client/internal/errors"
	"github.com/gofiber/fiber/v2"
)

var statusByType = map[customErrors.ErrorType]int{
	customErrors.ErrorTypeValidation:      fiber.StatusBadRequest,
	customErrors.ErrorTypeUnauthenticated: fiber.StatusUnauthorized,
	customErrors.ErrorTypeForbidden:       fiber.StatusForbidden,
	customErrors.ErrorTypeNotFound:        fiber.StatusNotFound,
}

// ErrorHandler renders every error a handler returns as {"error": "..."}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	var typedErr customErrors.TypedError
	if errors.As(err, &typedErr) {
		if status, ok := statusByType[typedErr.ErrorType()]; ok {
			return c.Status(status).JSON(fiber.Map{"error": typedErr.Error()})
		}
	}

	log.Printf("Internal error: %+v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal Server Error",
	})
}
