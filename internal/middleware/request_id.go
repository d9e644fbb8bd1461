package middleware

import (
	"video-quiz/internal/util"

	"github.com/gofiber/fiber/v2"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "requestID" // Key for storing the request id in fiber.Ctx locals
)

// RequestID tags every request with a ULID. A valid ULID supplied by the
// client in X-Request-ID is kept.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if !util.IsULID(id) {
			id = util.NewULID()
		}
		c.Locals(RequestIDKey, id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID, or "" outside it.
func GetRequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDKey).(string)
	return id
}
