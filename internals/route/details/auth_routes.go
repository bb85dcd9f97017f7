package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/auth/route"
)

func AuthRoutes(api fiber.Router, db *gorm.DB, authGuard fiber.Handler) {
	authRoute.AuthRoutes(api, db, authGuard)
}
