package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/qrcodes/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/qrcodes/service"
	studentRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/repository"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	helperAuth "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/auth"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
)

const (
	msgInvalidStudent = "ID siswa tidak valid"
	msgInvalidClass   = "ID kelas tidak valid"
)

type QRCodeController struct {
	Service *service.QRCodeService
}

func NewQRCodeController(db *gorm.DB, store storage.Store) *QRCodeController {
	return &QRCodeController{
		Service: service.NewQRCodeService(repository.NewQRCodeRepository(db), studentRepo.NewStudentRepository(db), store),
	}
}

// GET /api/qrcodes
func (qc *QRCodeController) List(c *fiber.Ctx) error {
	rows, err := qc.Service.List(c.UserContext())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Data QR Code berhasil diambil", rows, nil)
}

// POST /api/qrcodes/generate/:student_id
func (qc *QRCodeController) Generate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "student_id", msgInvalidStudent)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	row, err := qc.Service.Generate(c.UserContext(), id, helperAuth.GetUserIDPtr(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "QR Code berhasil dibuat", row)
}

// GET /api/qrcodes/:student_id
func (qc *QRCodeController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "student_id", msgInvalidStudent)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	row, err := qc.Service.Lookup(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Data QR Code berhasil diambil", row)
}

// DELETE /api/qrcodes/:student_id
func (qc *QRCodeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "student_id", msgInvalidStudent)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := qc.Service.Delete(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "QR Code berhasil dihapus", fiber.Map{"students_id": id})
}

// PUT /api/qrcodes/update/:student_id
func (qc *QRCodeController) Regenerate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "student_id", msgInvalidStudent)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	row, err := qc.Service.Regenerate(c.UserContext(), id, helperAuth.GetUserIDPtr(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "QR Code berhasil diperbarui", row)
}

// GET /api/qrcodes/class/:class_id
func (qc *QRCodeController) ListByClass(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "class_id", msgInvalidClass)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	rows, err := qc.Service.ListByClass(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Data QR Code berhasil diambil", rows, nil)
}

// POST /api/qrcodes/generate/class/:class_id
func (qc *QRCodeController) BulkGenerate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "class_id", msgInvalidClass)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	res, err := qc.Service.BulkGenerate(c.UserContext(), id, helperAuth.GetUserIDPtr(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, fmt.Sprintf("%d QR Code berhasil dibuat", len(res.Generated)), res)
}
