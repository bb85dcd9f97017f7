package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/reports/controller"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
)

// ReportRoutes: /api/reports. Logo dibaca dari store upload, hasil ke store export.
func ReportRoutes(api fiber.Router, db *gorm.DB, logos storage.Reader, exports storage.Store, authGuard fiber.Handler) {
	ctrl := controller.NewReportController(db, logos, exports)

	g := api.Group("/reports", authGuard)
	g.Get("/attendance", ctrl.Attendance)
}
