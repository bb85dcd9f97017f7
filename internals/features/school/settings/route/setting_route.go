package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/controller"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/middlewares"
	authMiddleware "github.com/naufaladysaputro/be-absensi-qrcode/internals/middlewares/auth"
)

const maxLogoSize = 2 << 20

func SettingRoutes(api fiber.Router, db *gorm.DB, store storage.Store, authGuard fiber.Handler) {
	ctrl := controller.NewSettingController(db, store)
	adminOnly := authMiddleware.OnlyRoles(constants.AdminOnly...)
	logo := middlewares.ImageUpload("logo", maxLogoSize)

	g := api.Group("/settings", authGuard)
	g.Get("/", ctrl.Get)
	g.Post("/", adminOnly, ctrl.Create)
	g.Put("/:id", adminOnly, ctrl.Update)
	g.Post("/logo/:id", adminOnly, logo, ctrl.UploadLogo)
	g.Put("/logo/:id", adminOnly, logo, ctrl.UploadLogo)
}
