package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "github.com/naufaladysaputro/be-absensi-qrcode/internals/databases"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

var uniqueKinds = map[string]apperror.Kind{
	model.UniqueNamaRombel: apperror.KindSelectionNameTaken,
}

type SelectionRepository struct {
	DB *gorm.DB
}

func NewSelectionRepository(db *gorm.DB) *SelectionRepository {
	return &SelectionRepository{DB: db}
}

func wrap(err error) error {
	return apperror.FromDB(err, apperror.KindSelectionNotFound, uniqueKinds)
}

func (r *SelectionRepository) List(ctx context.Context) ([]model.SelectionModel, error) {
	rows, err := database.Select[model.SelectionModel](ctx, r.DB, database.QueryOptions{
		OrderBy: &database.OrderBy{Column: "nama_rombel", Ascending: true},
	})
	return rows, wrap(err)
}

func (r *SelectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.SelectionModel, error) {
	row, err := database.First[model.SelectionModel](ctx, r.DB, database.QueryOptions{
		Filters: map[string]any{"id": id},
	})
	return row, wrap(err)
}

func (r *SelectionRepository) Create(ctx context.Context, m *model.SelectionModel) error {
	return wrap(database.Insert(ctx, r.DB, m))
}

func (r *SelectionRepository) Update(ctx context.Context, id uuid.UUID, values map[string]any) (*model.SelectionModel, error) {
	n, err := database.Update[model.SelectionModel](ctx, r.DB, map[string]any{"id": id}, values)
	if err != nil {
		return nil, wrap(err)
	}
	if n == 0 {
		return nil, apperror.New(apperror.KindSelectionNotFound)
	}
	return r.FindByID(ctx, id)
}

func (r *SelectionRepository) SoftDelete(ctx context.Context, id uuid.UUID, by *uuid.UUID) error {
	n, err := database.Delete[model.SelectionModel](ctx, r.DB, map[string]any{"id": id}, map[string]any{"modified_by": by})
	if err != nil {
		return wrap(err)
	}
	if n == 0 {
		return apperror.New(apperror.KindSelectionNotFound)
	}
	return nil
}
