package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/schedules/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/schedules/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/schedules/service"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	helperAuth "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/auth"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/middlewares"
)

const msgInvalidID = "ID jadwal tidak valid"

type ScheduleController struct {
	Service *service.ScheduleService
}

func NewScheduleController(db *gorm.DB, store storage.Store) *ScheduleController {
	return &ScheduleController{
		Service: service.NewScheduleService(repository.NewScheduleRepository(db), classRepo.NewClassRepository(db), store),
	}
}

// parseForm: body kosong boleh (update hanya file)
func parseForm(c *fiber.Ctx) (dto.ScheduleRequest, bool) {
	var req dto.ScheduleRequest
	if len(c.Body()) == 0 {
		return req, true
	}
	return req, c.BodyParser(&req) == nil
}

// GET /api/schedules
func (sc *ScheduleController) List(c *fiber.Ctx) error {
	rows, err := sc.Service.List(c.UserContext())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Data jadwal berhasil diambil", rows, nil)
}

// GET /api/schedules/:id
func (sc *ScheduleController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", msgInvalidID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	row, err := sc.Service.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Data jadwal berhasil diambil", row)
}

// POST /api/schedules (multipart: classes_id, schedule)
func (sc *ScheduleController) Create(c *fiber.Ctx) error {
	req, ok := parseForm(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	row, err := sc.Service.Create(c.UserContext(), req, middlewares.UploadedFile(c), helperAuth.GetUserIDPtr(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Jadwal berhasil dibuat", row)
}

// PUT /api/schedules/:id
func (sc *ScheduleController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", msgInvalidID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	req, ok := parseForm(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	row, err := sc.Service.Update(c.UserContext(), id, req, middlewares.UploadedFile(c), helperAuth.GetUserIDPtr(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Jadwal berhasil diupdate", row)
}

// POST /api/schedules/upsert
func (sc *ScheduleController) Upsert(c *fiber.Ctx) error {
	req, ok := parseForm(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	rows, created, err := sc.Service.Upsert(c.UserContext(), req, middlewares.UploadedFile(c), helperAuth.GetUserIDPtr(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if created {
		return helper.JsonCreated(c, "Jadwal berhasil dibuat", rows)
	}
	return helper.JsonUpdated(c, "Jadwal berhasil diupdate", rows)
}

// DELETE /api/schedules/:id (hapus permanen)
func (sc *ScheduleController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", msgInvalidID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := sc.Service.Delete(c.UserContext(), id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "Jadwal berhasil dihapus", fiber.Map{"id": id})
}
