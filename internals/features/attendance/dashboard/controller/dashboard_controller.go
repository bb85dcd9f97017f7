package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/dashboard/service"
	classRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/repository"
	studentRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/repository"
	userRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/repository"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
)

type DashboardController struct {
	Service *service.DashboardService
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{Service: service.NewDashboardService(
		studentRepo.NewStudentRepository(db),
		classRepo.NewClassRepository(db),
		userRepo.NewUserRepository(db),
		attendanceRepo.NewAttendanceRepository(db),
	)}
}

// GET /api/dashboard
func (dc *DashboardController) Get(c *fiber.Ctx) error {
	data, err := dc.Service.Get(c.UserContext())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Data dashboard berhasil diambil", data)
}
