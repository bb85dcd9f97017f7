package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "github.com/naufaladysaputro/be-absensi-qrcode/internals/databases"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/dto"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/students/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

var uniqueKinds = map[string]apperror.Kind{
	model.UniqueNIS: apperror.KindNISTaken,
}

var detailPreloads = []string{"Class", "Selection", "QRCode"}

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func wrap(err error) error {
	return apperror.FromDB(err, apperror.KindStudentNotFound, uniqueKinds)
}

func listOptions(q dto.ListQuery) database.QueryOptions {
	opts := database.QueryOptions{
		Filters:        map[string]any{},
		Preloads:       detailPreloads,
		OrderBy:        &database.OrderBy{Column: "nama_siswa", Ascending: true},
		IncludeDeleted: q.IncludeDeleted,
		Limit:          q.Limit,
		Offset:         q.Offset,
	}
	if q.ClassID != nil {
		opts.Filters["classes_id"] = *q.ClassID
	}
	return opts
}

// List mengembalikan halaman data + total tanpa limit
func (r *StudentRepository) List(ctx context.Context, q dto.ListQuery) ([]model.StudentModel, int64, error) {
	opts := listOptions(q)
	rows, err := database.Select[model.StudentModel](ctx, r.DB, opts)
	if err != nil {
		return nil, 0, wrap(err)
	}
	if q.Limit <= 0 {
		return rows, int64(len(rows)), nil
	}
	total, err := database.Count[model.StudentModel](ctx, r.DB, database.QueryOptions{
		Filters:        opts.Filters,
		IncludeDeleted: q.IncludeDeleted,
	})
	return rows, total, wrap(err)
}

// ListByClass: siswa aktif satu kelas, urut nama, tanpa relasi
func (r *StudentRepository) ListByClass(ctx context.Context, classID uuid.UUID) ([]model.StudentModel, error) {
	rows, err := database.Select[model.StudentModel](ctx, r.DB, database.QueryOptions{
		Filters: map[string]any{"classes_id": classID},
		OrderBy: &database.OrderBy{Column: "nama_siswa", Ascending: true},
	})
	return rows, wrap(err)
}

func (r *StudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.StudentModel, error) {
	row, err := database.First[model.StudentModel](ctx, r.DB, database.QueryOptions{
		Filters:  map[string]any{"id": id},
		Preloads: detailPreloads,
	})
	return row, wrap(err)
}

func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	n, err := database.Count[model.StudentModel](ctx, r.DB, database.QueryOptions{})
	return n, wrap(err)
}

func (r *StudentRepository) Create(ctx context.Context, m *model.StudentModel) error {
	return wrap(database.Insert(ctx, r.DB, m))
}

func (r *StudentRepository) Update(ctx context.Context, id uuid.UUID, values map[string]any) error {
	n, err := database.Update[model.StudentModel](ctx, r.DB, map[string]any{"id": id}, values)
	if err != nil {
		return wrap(err)
	}
	if n == 0 {
		return apperror.New(apperror.KindStudentNotFound)
	}
	return nil
}

func (r *StudentRepository) SoftDelete(ctx context.Context, id uuid.UUID, by *uuid.UUID) error {
	n, err := database.Delete[model.StudentModel](ctx, r.DB, map[string]any{"id": id}, map[string]any{"modified_by": by})
	if err != nil {
		return wrap(err)
	}
	if n == 0 {
		return apperror.New(apperror.KindStudentNotFound)
	}
	return nil
}
