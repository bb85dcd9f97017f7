package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
)

const RequestTimeout = 10 * time.Second

// RequestContext: Request-ID + timeout guard (selaras dengan statement_timeout di DB)
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = utils.UUID()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals("request_id", id)

		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
