package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/service"
	selectionRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/repository"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	helperAuth "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/auth"
)

const msgInvalidID = "ID kelas tidak valid"

type ClassController struct {
	Service *service.ClassService
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{
		Service: service.NewClassService(
			repository.NewClassRepository(db),
			selectionRepo.NewSelectionRepository(db),
		),
	}
}

// GET /api/classes
func (cc *ClassController) List(c *fiber.Ctx) error {
	rows, err := cc.Service.List(c.UserContext())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Data kelas berhasil diambil", rows, nil)
}

// GET /api/classes/:id
func (cc *ClassController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", msgInvalidID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	row, err := cc.Service.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Data kelas berhasil diambil", row)
}

// POST /api/classes
func (cc *ClassController) Create(c *fiber.Ctx) error {
	var req dto.ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	row, err := cc.Service.Create(c.UserContext(), req, helperAuth.GetUserIDPtr(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Kelas berhasil dibuat", row)
}

// PUT /api/classes/:id
func (cc *ClassController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", msgInvalidID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	row, err := cc.Service.Update(c.UserContext(), id, req, helperAuth.GetUserIDPtr(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Kelas berhasil diupdate", row)
}

// DELETE /api/classes/:id (soft delete)
func (cc *ClassController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", msgInvalidID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := cc.Service.Delete(c.UserContext(), id, helperAuth.GetUserIDPtr(c)); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "Kelas berhasil dihapus", fiber.Map{"id": id})
}
