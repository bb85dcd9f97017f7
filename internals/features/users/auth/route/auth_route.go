package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/auth/controller"
	rateLimiter "github.com/naufaladysaputro/be-absensi-qrcode/internals/middlewares"
)

// AuthRoutes: /api/auth. Logout butuh token supaya bisa di-blacklist.
func AuthRoutes(api fiber.Router, db *gorm.DB, authGuard fiber.Handler) {
	ctrl := controller.NewAuthController(db)

	g := api.Group("/auth")
	g.Post("/register", rateLimiter.RegisterRateLimiter(), ctrl.Register)
	g.Post("/login", rateLimiter.LoginRateLimiter(), ctrl.Login)
	g.Post("/logout", authGuard, ctrl.Logout)
}
