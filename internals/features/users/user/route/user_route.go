package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/controller"
	authMiddleware "github.com/naufaladysaputro/be-absensi-qrcode/internals/middlewares/auth"
)

// UserRoutes: /api/users, semua butuh login
func UserRoutes(api fiber.Router, db *gorm.DB, authGuard fiber.Handler) {
	ctrl := controller.NewUserController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.AdminOnly...)

	g := api.Group("/users", authGuard)
	g.Get("/test-auth", ctrl.TestAuth)
	g.Get("/", adminOnly, ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", adminOnly, ctrl.Delete)
}
