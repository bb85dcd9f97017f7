package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/attendances/service"
	qrRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/qrcodes/repository"
	settingRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/repository"
	studentRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/repository"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
)

const (
	msgInvalidBody    = "Body request tidak valid"
	msgInvalidStudent = "ID siswa tidak valid"
)

type AttendanceController struct {
	Service *service.AttendanceService
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		Service: service.NewAttendanceService(
			repository.NewAttendanceRepository(db),
			qrRepo.NewQRCodeRepository(db),
			studentRepo.NewStudentRepository(db),
			settingRepo.NewSettingRepository(db),
		),
	}
}

func scanMessage(r *dto.ScanResult) string {
	if r.Action == service.ActionPulang {
		return "Jam pulang berhasil dicatat"
	}
	return "Jam masuk berhasil dicatat"
}

type scanFunc func(c *fiber.Ctx, code string) (*dto.ScanResult, error)

func (ac *AttendanceController) handleScan(c *fiber.Ctx, scan scanFunc) error {
	var req dto.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	res, err := scan(c, req.UniqueCode)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, scanMessage(res), res)
}

// POST /api/attendance/scan
func (ac *AttendanceController) Scan(c *fiber.Ctx) error {
	return ac.handleScan(c, func(c *fiber.Ctx, code string) (*dto.ScanResult, error) {
		return ac.Service.Scan(c.UserContext(), code)
	})
}

// POST /api/attendance/scan/masuk
func (ac *AttendanceController) ScanIn(c *fiber.Ctx) error {
	return ac.handleScan(c, func(c *fiber.Ctx, code string) (*dto.ScanResult, error) {
		return ac.Service.ScanIn(c.UserContext(), code)
	})
}

// POST /api/attendance/scan/pulang
func (ac *AttendanceController) ScanOut(c *fiber.Ctx) error {
	return ac.handleScan(c, func(c *fiber.Ctx, code string) (*dto.ScanResult, error) {
		return ac.Service.ScanOut(c.UserContext(), code)
	})
}

// GET /api/attendance/student/:studentId?date=YYYY-MM-DD
func (ac *AttendanceController) StudentDay(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "studentId", msgInvalidStudent)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	rows, err := ac.Service.StudentDay(c.UserContext(), id, c.Query("date"))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Data absensi berhasil diambil", rows, nil)
}

// GET /api/attendance/class/:classId?date=YYYY-MM-DD
func (ac *AttendanceController) ClassDay(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "classId", "ID kelas tidak valid")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	res, err := ac.Service.ClassDay(c.UserContext(), id, c.Query("date"))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Data absensi kelas berhasil diambil", res)
}

// PUT /api/attendance/:id
func (ac *AttendanceController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", "ID absensi tidak valid")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	row, err := ac.Service.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Data absensi berhasil diperbarui", row)
}

// PUT /api/attendance/student/:studentId/date/:date
func (ac *AttendanceController) UpsertByDate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "studentId", msgInvalidStudent)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	row, err := ac.Service.UpsertByDate(c.UserContext(), id, c.Params("date"), req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Data absensi berhasil disimpan", row)
}
