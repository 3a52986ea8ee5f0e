package middleware

import (
	app_logger "github.com/abisalde/povertyline-client/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// RequestContext tags the request's user context with the caller's request
// id, minting one when the header is absent.
func RequestContext(c *fiber.Ctx) error {
	rid := c.Get(RequestIDHeader)
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Set(RequestIDHeader, rid)
	c.SetUserContext(app_logger.WithRequestID(c.UserContext(), rid))
	return c.Next()
}
