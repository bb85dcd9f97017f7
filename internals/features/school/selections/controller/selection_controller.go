package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/service"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	helperAuth "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/auth"
)

const msgInvalidID = "ID rombel tidak valid"

type SelectionController struct {
	Service *service.SelectionService
}

func NewSelectionController(db *gorm.DB) *SelectionController {
	return &SelectionController{Service: service.NewSelectionService(repository.NewSelectionRepository(db))}
}

// GET /api/selections
func (sc *SelectionController) List(c *fiber.Ctx) error {
	rows, err := sc.Service.List(c.UserContext())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Data rombel berhasil diambil", rows, nil)
}

// GET /api/selections/:id
func (sc *SelectionController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", msgInvalidID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	row, err := sc.Service.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Data rombel berhasil diambil", row)
}

// POST /api/selections
func (sc *SelectionController) Create(c *fiber.Ctx) error {
	var req dto.SelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	row, err := sc.Service.Create(c.UserContext(), req, helperAuth.GetUserIDPtr(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Rombel berhasil dibuat", row)
}

// PUT /api/selections/:id
func (sc *SelectionController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", msgInvalidID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.SelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	row, err := sc.Service.Update(c.UserContext(), id, req, helperAuth.GetUserIDPtr(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Rombel berhasil diupdate", row)
}

// DELETE /api/selections/:id (soft delete)
func (sc *SelectionController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", msgInvalidID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := sc.Service.Delete(c.UserContext(), id, helperAuth.GetUserIDPtr(c)); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "Rombel berhasil dihapus", fiber.Map{"id": id})
}
