// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
)

// CorsMiddleware: origin dari FRONTEND_URL (boleh dipisah koma), credentials
// diizinkan karena token juga dikirim lewat cookie.
func CorsMiddleware() fiber.Handler {
	origins := []string{}
	for _, o := range strings.Split(configs.FrontendURL, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = append(origins, "http://localhost:5173")
	}

	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ", "),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: true,
	})
}
