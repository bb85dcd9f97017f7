package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/controller"
	authMiddleware "github.com/naufaladysaputro/be-absensi-qrcode/internals/middlewares/auth"
)

// AttendanceRoutes: /api/attendance
func AttendanceRoutes(api fiber.Router, db *gorm.DB, authGuard fiber.Handler) {
	ctrl := controller.NewAttendanceController(db)
	adminOnly := authMiddleware.OnlyRoles(constants.AdminOnly...)

	g := api.Group("/attendance", authGuard)
	g.Post("/scan", ctrl.Scan)
	g.Post("/scan/masuk", ctrl.ScanIn)
	g.Post("/scan/pulang", ctrl.ScanOut)
	g.Get("/student/:studentId", ctrl.StudentDay)
	g.Get("/class/:classId", ctrl.ClassDay)
	g.Put("/student/:studentId/date/:date", adminOnly, ctrl.UpsertByDate)
	g.Put("/:id", ctrl.Update)
}
