package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	database "github.com/naufaladysaputro/be-absensi-qrcode/internals/databases"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/features/users/auth/model"
	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

type BlacklistRepository struct {
	DB *gorm.DB
}

func NewBlacklistRepository(db *gorm.DB) *BlacklistRepository {
	return &BlacklistRepository{DB: db}
}

// Add mencatat hash token. Logout dua kali dengan token yang sama bukan error.
func (r *BlacklistRepository) Add(ctx context.Context, tokenHash string, expiredAt time.Time) error {
	row := model.TokenBlacklist{Token: tokenHash, ExpiredAt: expiredAt}
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token"}}, DoNothing: true}).
		Create(&row).Error
	return apperror.FromDB(err, apperror.KindNotFound, nil)
}

func (r *BlacklistRepository) IsListed(ctx context.Context, tokenHash string, now time.Time) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", tokenHash, now).
		Limit(1).
		Count(&n).Error
	if err != nil {
		return false, apperror.FromDB(err, apperror.KindNotFound, nil)
	}
	return n > 0, nil
}

// PurgeExpired menghapus permanen baris yang token-nya sudah kedaluwarsa.
func (r *BlacklistRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Unscoped().
		Where("expired_at <= ?", now).
		Delete(&model.TokenBlacklist{})
	if res.Error != nil {
		return 0, apperror.FromDB(res.Error, apperror.KindNotFound, nil)
	}
	return res.RowsAffected, nil
}

// Count: jumlah token yang masih diblokir, untuk log cron
func (r *BlacklistRepository) Count(ctx context.Context) (int64, error) {
	n, err := database.Count[model.TokenBlacklist](ctx, r.DB, database.QueryOptions{})
	return n, apperror.FromDB(err, apperror.KindNotFound, nil)
}
