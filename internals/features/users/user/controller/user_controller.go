package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/service"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	helperAuth "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/auth"
)

type UserController struct {
	Service *service.UserService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{Service: service.NewUserService(repository.NewUserRepository(db))}
}

func actorFrom(c *fiber.Ctx) (service.Actor, error) {
	id, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return service.Actor{}, err
	}
	return service.Actor{ID: id, Role: helperAuth.GetRole(c)}, nil
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return helper.ParseUUIDParam(c, "id", "ID user tidak valid")
}

// GET /api/users/test-auth
func (uc *UserController) TestAuth(c *fiber.Ctx) error {
	claims, _ := helperAuth.GetClaims(c)
	return helper.JsonOK(c, "Authentication successful", claims)
}

// GET /api/users?include_deleted=true
func (uc *UserController) List(c *fiber.Ctx) error {
	includeDeleted := c.QueryBool("include_deleted", false) || c.QueryBool("includeDeleted", false)
	rows, err := uc.Service.List(c.UserContext(), includeDeleted)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "Data user berhasil diambil", rows, nil)
}

// GET /api/users/:id
func (uc *UserController) Get(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	u, err := uc.Service.Get(c.UserContext(), actor, id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Data user berhasil diambil", u)
}

// PUT /api/users/:id
func (uc *UserController) Update(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	u, err := uc.Service.Update(c.UserContext(), actor, id, req)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "User berhasil diperbarui", u)
}

// DELETE /api/users/:id
func (uc *UserController) Delete(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := uc.Service.Delete(c.UserContext(), actor, id); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "User berhasil dihapus", fiber.Map{"id": id})
}
