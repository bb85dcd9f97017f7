package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classRoute "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/route"
	scheduleRoute "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/schedules/route"
	selectionRoute "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/route"
	settingRoute "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/route"
	studentRoute "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/route"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
)

// SchoolRoutes: master data sekolah (rombel, kelas, siswa, jadwal, pengaturan)
func SchoolRoutes(api fiber.Router, db *gorm.DB, uploads storage.Store, authGuard fiber.Handler) {
	selectionRoute.SelectionRoutes(api, db, authGuard)
	classRoute.ClassRoutes(api, db, authGuard)
	studentRoute.StudentRoutes(api, db, uploads, authGuard)
	scheduleRoute.ScheduleRoutes(api, db, uploads, authGuard)
	settingRoute.SettingRoutes(api, db, uploads, authGuard)
}
