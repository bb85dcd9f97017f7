package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	qrRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/qrcodes/repository"
	qrService "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/qrcodes/service"
	classRepo "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/repository"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/service"
	helper "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers"
	helperAuth "github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/auth"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/storage"
)

const msgInvalidID = "ID siswa tidak valid"

type StudentController struct {
	Service *service.StudentService
}

func NewStudentController(db *gorm.DB, store storage.Store) *StudentController {
	students := repository.NewStudentRepository(db)
	qr := qrService.NewQRCodeService(qrRepo.NewQRCodeRepository(db), students, store)
	return &StudentController{
		Service: service.NewStudentService(students, classRepo.NewClassRepository(db), qr),
	}
}

// GET /api/students?kelasId=&include_deleted=&page=&per_page=
func (sc *StudentController) List(c *fiber.Ctx) error {
	classID, err := helper.ParseUUIDQuery(c, "kelasId", "ID kelas tidak valid")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	q := dto.ListQuery{
		ClassID:        classID,
		IncludeDeleted: c.QueryBool("include_deleted", false) || c.QueryBool("includeDeleted", false),
	}
	paging, paged := helper.ResolvePaging(c, 20, 200)
	if paged {
		q.Limit, q.Offset = paging.Limit, paging.Offset
	}

	rows, total, err := sc.Service.List(c.UserContext(), q)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if !paged {
		return helper.JsonList(c, "Data siswa berhasil diambil", rows, nil)
	}
	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage, len(rows))
	return helper.JsonList(c, "Data siswa berhasil diambil", rows, &p)
}

// GET /api/students/:id
func (sc *StudentController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", msgInvalidID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	row, err := sc.Service.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Data siswa berhasil diambil", row)
}

// POST /api/students
func (sc *StudentController) Create(c *fiber.Ctx) error {
	var req dto.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	row, err := sc.Service.Create(c.UserContext(), req, helperAuth.GetUserIDPtr(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Siswa berhasil ditambahkan", row)
}

// PUT /api/students/:id
func (sc *StudentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", msgInvalidID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var req dto.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	row, err := sc.Service.Update(c.UserContext(), id, req, helperAuth.GetUserIDPtr(c))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Siswa berhasil diupdate", row)
}

// DELETE /api/students/:id (soft delete)
func (sc *StudentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", msgInvalidID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	if err := sc.Service.Delete(c.UserContext(), id, helperAuth.GetUserIDPtr(c)); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "Siswa berhasil dihapus", fiber.Map{"id": id})
}
