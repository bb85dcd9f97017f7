package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/qrcodes/controller"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
)

// QRCodeRoutes: /api/qrcodes, semua butuh login
func QRCodeRoutes(api fiber.Router, db *gorm.DB, store storage.Store, authGuard fiber.Handler) {
	ctrl := controller.NewQRCodeController(db, store)

	g := api.Group("/qrcodes", authGuard)
	g.Get("/", ctrl.List)
	g.Get("/class/:class_id", ctrl.ListByClass)
	g.Post("/generate/class/:class_id", ctrl.BulkGenerate)
	g.Post("/generate/:student_id", ctrl.Generate)
	g.Put("/update/:student_id", ctrl.Regenerate)
	g.Get("/:student_id", ctrl.Get)
	g.Delete("/:student_id", ctrl.Delete)
}
