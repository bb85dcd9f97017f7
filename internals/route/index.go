// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/configs"
	authController "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/auth/controller"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
	authMiddleware "github.com/naufaladysaputro/be-absensi-qrcode/internals/middlewares/auth"
	routeDetails "github.com/naufaladysaputro/be-absensi-qrcode/internals/route/details"
)

var startTime time.Time

// Stores: tempat file upload (foto, jadwal, logo, QR) dan file export laporan
type Stores struct {
	Uploads *storage.LocalStore
	Exports *storage.LocalStore
}

func NewStores() Stores {
	return Stores{
		Uploads: storage.NewLocalStore(configs.UploadDir, "/uploads"),
		Exports: storage.NewLocalStore(configs.ExportDir, "/exports"),
	}
}

func SetupRoutes(app *fiber.App, db *gorm.DB, stores Stores) {
	startTime = time.Now()
	log := configs.Component("routes")

	BaseRoutes(app)

	app.Static("/uploads", configs.UploadDir)
	app.Static("/exports", configs.ExportDir)

	// satu guard untuk semua route privat; cek blacklist lewat AuthService
	authGuard := authMiddleware.AuthMiddleware(authController.NewAuthService(db))
	api := app.Group("/api")

	log.Info().Msg("Mounting auth & user routes...")
	routeDetails.AuthRoutes(api, db, authGuard)
	routeDetails.UserRoutes(api, db, authGuard)

	log.Info().Msg("Mounting school routes...")
	routeDetails.SchoolRoutes(api, db, stores.Uploads, authGuard)

	log.Info().Msg("Mounting attendance routes...")
	routeDetails.AttendanceRoutes(api, db, stores.Uploads, stores.Exports, authGuard)
}
