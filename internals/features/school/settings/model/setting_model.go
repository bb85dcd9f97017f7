package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/dbtime"
)

// SettingModel: profil sekolah. Baris pertama dianggap pengaturan aktif.
type SettingModel struct {
	ID          uuid.UUID   `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	NamaSekolah string      `gorm:"column:nama_sekolah;type:varchar(150);not null" json:"nama_sekolah"`
	TahunAjaran string      `gorm:"column:tahun_ajaran;type:varchar(9);not null" json:"tahun_ajaran"`
	JamMasuk    *dbtime.Tod `gorm:"column:jam_masuk;type:time" json:"jam_masuk"`
	LogoPath    *string     `gorm:"column:logo_path;type:text" json:"logo_path"`
	ModifiedBy  *uuid.UUID  `gorm:"column:modified_by;type:uuid" json:"modified_by,omitempty"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (SettingModel) TableName() string {
	return "settings"
}
