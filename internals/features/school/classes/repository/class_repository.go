package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "github.com/naufaladysaputro/be-absensi-qrcode/internals/databases"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

var uniqueKinds = map[string]apperror.Kind{
	model.UniqueSelectionNama: apperror.KindClassNameTaken,
}

type ClassRepository struct {
	DB *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{DB: db}
}

func wrap(err error) error {
	return apperror.FromDB(err, apperror.KindClassNotFound, uniqueKinds)
}

// List: urut nama_kelas, lengkap dengan rombel dan jadwal
func (r *ClassRepository) List(ctx context.Context) ([]model.ClassModel, error) {
	rows, err := database.Select[model.ClassModel](ctx, r.DB, database.QueryOptions{
		Preloads: []string{"Selection", "Schedules"},
		OrderBy:  &database.OrderBy{Column: "nama_kelas", Ascending: true},
	})
	return rows, wrap(err)
}

func (r *ClassRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ClassModel, error) {
	row, err := database.First[model.ClassModel](ctx, r.DB, database.QueryOptions{
		Filters:  map[string]any{"id": id},
		Preloads: []string{"Selection"},
	})
	return row, wrap(err)
}

func (r *ClassRepository) Count(ctx context.Context) (int64, error) {
	n, err := database.Count[model.ClassModel](ctx, r.DB, database.QueryOptions{})
	return n, wrap(err)
}

func (r *ClassRepository) Create(ctx context.Context, m *model.ClassModel) error {
	return wrap(database.Insert(ctx, r.DB, m))
}

func (r *ClassRepository) Update(ctx context.Context, id uuid.UUID, values map[string]any) error {
	n, err := database.Update[model.ClassModel](ctx, r.DB, map[string]any{"id": id}, values)
	if err != nil {
		return wrap(err)
	}
	if n == 0 {
		return apperror.New(apperror.KindClassNotFound)
	}
	return nil
}

func (r *ClassRepository) SoftDelete(ctx context.Context, id uuid.UUID, by *uuid.UUID) error {
	n, err := database.Delete[model.ClassModel](ctx, r.DB, map[string]any{"id": id}, map[string]any{"modified_by": by})
	if err != nil {
		return wrap(err)
	}
	if n == 0 {
		return apperror.New(apperror.KindClassNotFound)
	}
	return nil
}
