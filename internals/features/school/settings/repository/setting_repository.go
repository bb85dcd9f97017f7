package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "github.com/naufaladysaputro/be-absensi-qrcode/internals/databases"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/settings/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

type SettingRepository struct {
	DB *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{DB: db}
}

func wrap(err error) error {
	return apperror.FromDB(err, apperror.KindSettingsNotFound, nil)
}

// Current: baris pertama (paling lama dibuat)
func (r *SettingRepository) Current(ctx context.Context) (*model.SettingModel, error) {
	row, err := database.First[model.SettingModel](ctx, r.DB, database.QueryOptions{
		OrderBy: &database.OrderBy{Column: "created_at", Ascending: true},
	})
	return row, wrap(err)
}

func (r *SettingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SettingModel, error) {
	row, err := database.First[model.SettingModel](ctx, r.DB, database.QueryOptions{
		Filters: map[string]any{"id": id},
	})
	return row, wrap(err)
}

func (r *SettingRepository) Create(ctx context.Context, m *model.SettingModel) error {
	return wrap(database.Insert(ctx, r.DB, m))
}

func (r *SettingRepository) Update(ctx context.Context, id uuid.UUID, values map[string]any) error {
	n, err := database.Update[model.SettingModel](ctx, r.DB, map[string]any{"id": id}, values)
	if err != nil {
		return wrap(err)
	}
	if n == 0 {
		return apperror.New(apperror.KindSettingsNotFound)
	}
	return nil
}
