package middlewares

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
)

// RecoveryMiddleware menangkap panic, log stack lewat zerolog, lalu
// diteruskan ke ErrorHandler sebagai 500.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			configs.Component("recover").Error().
				Interface("panic", e).
				Str("path", c.Path()).
				Bytes("stack", debug.Stack()).
				Msg("panic")
		},
	})
}
