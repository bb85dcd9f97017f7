package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/reports/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/reports/service"
	classRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/repository"
	settingRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/repository"
	studentRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/repository"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
)

type ReportController struct {
	Service *service.ReportService
}

func NewReportController(db *gorm.DB, logos storage.Reader, exports storage.Store) *ReportController {
	return &ReportController{Service: &service.ReportService{
		Settings:   settingRepo.NewSettingRepository(db),
		Classes:    classRepo.NewClassRepository(db),
		Students:   studentRepo.NewStudentRepository(db),
		Attendance: attendanceRepo.NewAttendanceRepository(db),
		Exports:    exports,
		Logos:      logos,
	}}
}

// GET /api/reports/attendance?month=&year=&classId=&format=pdf|doc
func (rc *ReportController) Attendance(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	p, err := service.ParseParams(q)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	res, err := rc.Service.Generate(c.UserContext(), p)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Laporan absensi berhasil dibuat",
		"url":     res.URL,
		"data":    res,
	})
}
