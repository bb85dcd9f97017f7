package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "github.com/naufaladysaputro/be-absensi-qrcode/internals/databases"
	classModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/schedules/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

// ScheduleWithClass: jadwal + kelasnya. Relasi dipasang di sini karena model
// kelas sudah mengimpor model jadwal.
type ScheduleWithClass struct {
	model.ScheduleModel
	Class *classModel.ClassModel `gorm:"foreignKey:ClassesID;references:ID"`
}

func (ScheduleWithClass) TableName() string { return "schedules" }

type ScheduleRepository struct {
	DB *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

func wrap(err error) error {
	return apperror.FromDB(err, apperror.KindScheduleNotFound, nil)
}

func (r *ScheduleRepository) List(ctx context.Context) ([]ScheduleWithClass, error) {
	rows, err := database.Select[ScheduleWithClass](ctx, r.DB, database.QueryOptions{
		Preloads: []string{"Class"},
		OrderBy:  &database.OrderBy{Column: "created_at"},
	})
	return rows, wrap(err)
}

func (r *ScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*ScheduleWithClass, error) {
	row, err := database.First[ScheduleWithClass](ctx, r.DB, database.QueryOptions{
		Filters:  map[string]any{"id": id},
		Preloads: []string{"Class"},
	})
	return row, wrap(err)
}

func (r *ScheduleRepository) ListByClass(ctx context.Context, classID uuid.UUID) ([]model.ScheduleModel, error) {
	rows, err := database.Select[model.ScheduleModel](ctx, r.DB, database.QueryOptions{
		Filters: map[string]any{"classes_id": classID},
		OrderBy: &database.OrderBy{Column: "created_at", Ascending: true},
	})
	return rows, wrap(err)
}

func (r *ScheduleRepository) Create(ctx context.Context, m *model.ScheduleModel) error {
	return wrap(database.Insert(ctx, r.DB, m))
}

func (r *ScheduleRepository) Update(ctx context.Context, id uuid.UUID, values map[string]any) error {
	n, err := database.Update[model.ScheduleModel](ctx, r.DB, map[string]any{"id": id}, values)
	if err != nil {
		return wrap(err)
	}
	if n == 0 {
		return apperror.New(apperror.KindScheduleNotFound)
	}
	return nil
}

// UpdateByClass menulis values ke semua jadwal milik kelas, n = jumlah baris
func (r *ScheduleRepository) UpdateByClass(ctx context.Context, classID uuid.UUID, values map[string]any) (int64, error) {
	n, err := database.Update[model.ScheduleModel](ctx, r.DB, map[string]any{"classes_id": classID}, values)
	return n, wrap(err)
}

// Delete: hapus permanen, schedules tidak punya deleted_at
func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := database.Delete[model.ScheduleModel](ctx, r.DB, map[string]any{"id": id}, nil)
	if err != nil {
		return wrap(err)
	}
	if n == 0 {
		return apperror.New(apperror.KindScheduleNotFound)
	}
	return nil
}
