package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/schedules/controller"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/middlewares"
)

const maxScheduleSize = 5 << 20

func ScheduleRoutes(api fiber.Router, db *gorm.DB, store storage.Store, authGuard fiber.Handler) {
	ctrl := controller.NewScheduleController(db, store)
	upload := middlewares.ImageUpload("schedule", maxScheduleSize)

	g := api.Group("/schedules", authGuard)
	g.Get("/", ctrl.List)
	g.Post("/upsert", upload, ctrl.Upsert)
	g.Get("/:id", ctrl.Get)
	g.Post("/", upload, ctrl.Create)
	g.Put("/:id", upload, ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
}
