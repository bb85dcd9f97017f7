package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/route"
)

func UserRoutes(api fiber.Router, db *gorm.DB, authGuard fiber.Handler) {
	userRoute.UserRoutes(api, db, authGuard)
}
