package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/controller"
	authMiddleware "github.com/naufaladysaputro/be-absensi-qrcode/internals/middlewares/auth"
)

// SelectionRoutes: baca publik, tulis khusus admin
func SelectionRoutes(api fiber.Router, db *gorm.DB, authGuard fiber.Handler) {
	ctrl := controller.NewSelectionController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.AdminOnly...)

	g := api.Group("/selections")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Post("/", authGuard, adminOnly, ctrl.Create)
	g.Put("/:id", authGuard, adminOnly, ctrl.Update)
	g.Delete("/:id", authGuard, adminOnly, ctrl.Delete)
}
