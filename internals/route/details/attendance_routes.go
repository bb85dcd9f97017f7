package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/route"
	dashboardRoute "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/dashboard/route"
	qrRoute "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/qrcodes/route"
	reportRoute "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/reports/route"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
)

type uploadStore interface {
	storage.Store
	storage.Reader
}

func AttendanceRoutes(api fiber.Router, db *gorm.DB, uploads uploadStore, exports storage.Store, authGuard fiber.Handler) {
	qrRoute.QRCodeRoutes(api, db, uploads, authGuard)
	attendanceRoute.AttendanceRoutes(api, db, authGuard)
	reportRoute.ReportRoutes(api, db, uploads, exports, authGuard)
	dashboardRoute.DashboardRoutes(api, db, authGuard)
}
