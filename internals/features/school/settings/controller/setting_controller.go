package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/service"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
	helperAuth "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/auth"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/middlewares"
)

const msgInvalidID = "ID pengaturan tidak valid"

type SettingController struct {
	Service *service.SettingService
}

func NewSettingController(db *gorm.DB, store storage.Store) *SettingController {
	return &SettingController{Service: service.NewSettingService(repository.NewSettingRepository(db), store)}
}

// GET /api/settings
func (sc *SettingController) Get(c *fiber.Ctx) error {
	row, err := sc.Service.Get(c.UserContext())
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Pengaturan berhasil diambil", row)
}

// POST /api/settings
func (sc *SettingController) Create(c *fiber.Ctx) error {
	var req dto.SettingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	row, err := sc.Service.Create(c.UserContext(), req, helperAuth.GetUserIDPtr(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Pengaturan berhasil dibuat", row)
}

// PUT /api/settings/:id
func (sc *SettingController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", msgInvalidID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.SettingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	row, err := sc.Service.Update(c.UserContext(), id, req, helperAuth.GetUserIDPtr(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Pengaturan berhasil diperbarui", row)
}

// POST|PUT /api/settings/logo/:id (multipart field "logo")
func (sc *SettingController) UploadLogo(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", msgInvalidID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	fh := middlewares.UploadedFile(c)
	if fh == nil {
		return helper.JsonAppError(c, apperror.Newf(apperror.KindFileRequired, "File logo harus diunggah"))
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonAppError(c, apperror.Wrap(apperror.KindInvalidFile, err))
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return helper.JsonAppError(c, apperror.Wrap(apperror.KindInvalidFile, err))
	}

	row, err := sc.Service.UpdateLogo(c.UserContext(), id, data, fh.Filename, helperAuth.GetUserIDPtr(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Logo berhasil diperbarui", row)
}
