// internals/features/users/user/repository/user_repository.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "github.com/naufaladysaputro/be-absensi-qrcode/internals/databases"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/user/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

var uniqueKinds = map[string]apperror.Kind{
	model.UniqueUsername: apperror.KindUsernameTaken,
	model.UniqueEmail:    apperror.KindEmailTaken,
}

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func wrap(err error) error {
	return apperror.FromDB(err, apperror.KindUserNotFound, uniqueKinds)
}

func (r *UserRepository) List(ctx context.Context, includeDeleted bool) ([]model.UserModel, error) {
	rows, err := database.Select[model.UserModel](ctx, r.DB, database.QueryOptions{
		OrderBy:        &database.OrderBy{Column: "created_at"},
		IncludeDeleted: includeDeleted,
	})
	return rows, wrap(err)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	row, err := database.First[model.UserModel](ctx, r.DB, database.QueryOptions{
		Filters: map[string]any{"id": id},
	})
	return row, wrap(err)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.UserModel, error) {
	row, err := database.First[model.UserModel](ctx, r.DB, database.QueryOptions{
		Filters: map[string]any{"username": username},
	})
	return row, wrap(err)
}

func (r *UserRepository) Count(ctx context.Context, filters map[string]any) (int64, error) {
	n, err := database.Count[model.UserModel](ctx, r.DB, database.QueryOptions{Filters: filters})
	return n, wrap(err)
}

func (r *UserRepository) Create(ctx context.Context, u *model.UserModel) error {
	return wrap(database.Insert(ctx, r.DB, u))
}

// Update menulis values ke user aktif; user tidak ada → KindUserNotFound.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, values map[string]any) (*model.UserModel, error) {
	n, err := database.Update[model.UserModel](ctx, r.DB, map[string]any{"id": id}, values)
	if err != nil {
		return nil, wrap(err)
	}
	if n == 0 {
		return nil, apperror.New(apperror.KindUserNotFound)
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID, by *uuid.UUID) error {
	n, err := database.Delete[model.UserModel](ctx, r.DB, map[string]any{"id": id}, map[string]any{"modified_by": by})
	if err != nil {
		return wrap(err)
	}
	if n == 0 {
		return apperror.New(apperror.KindUserNotFound)
	}
	return nil
}
