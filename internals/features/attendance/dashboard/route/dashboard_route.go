package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/dashboard/controller"
)

func DashboardRoutes(api fiber.Router, db *gorm.DB, authGuard fiber.Handler) {
	ctrl := controller.NewDashboardController(db)
	api.Get("/dashboard", authGuard, ctrl.Get)
}
