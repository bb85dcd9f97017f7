package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/controller"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
	authMiddleware "github.com/naufaladysaputro/be-absensi-qrcode/internals/middlewares/auth"
)

func StudentRoutes(api fiber.Router, db *gorm.DB, store storage.Store, authGuard fiber.Handler) {
	ctrl := controller.NewStudentController(db, store)
	adminOnly := authMiddleware.OnlyRoles(constants.AdminOnly...)

	g := api.Group("/students")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Post("/", authGuard, adminOnly, ctrl.Create)
	g.Put("/:id", authGuard, adminOnly, ctrl.Update)
	g.Delete("/:id", authGuard, adminOnly, ctrl.Delete)
}
