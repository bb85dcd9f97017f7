package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/controller"
	authMiddleware "github.com/naufaladysaputro/be-absensi-qrcode/internals/middlewares/auth"
)

func ClassRoutes(api fiber.Router, db *gorm.DB, authGuard fiber.Handler) {
	ctrl := controller.NewClassController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.AdminOnly...)

	g := api.Group("/classes")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Post("/", authGuard, adminOnly, ctrl.Create)
	g.Put("/:id", authGuard, adminOnly, ctrl.Update)
	g.Delete("/:id", authGuard, adminOnly, ctrl.Delete)
}
