package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	qrModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/attendance/qrcodes/model"
	classModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/classes/model"
	selectionModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/model"
)

type StudentModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	NIS          string    `gorm:"column:nis;type:varchar(30);not null;uniqueIndex:idx_students_nis_live,where:deleted_at IS NULL" json:"nis"`
	NamaSiswa    string    `gorm:"column:nama_siswa;type:varchar(150);not null" json:"nama_siswa"`
	JenisKelamin string    `gorm:"column:jenis_kelamin;type:varchar(20);not null" json:"jenis_kelamin"`
	ClassesID    uuid.UUID `gorm:"column:classes_id;type:uuid;not null;index" json:"classes_id"`
	// disalin dari kelas saat create/update
	SelectionsID uuid.UUID `gorm:"column:selections_id;type:uuid;not null;index" json:"selections_id"`

	ModifiedBy *uuid.UUID     `gorm:"column:modified_by;type:uuid" json:"modified_by,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`

	Class     *classModel.ClassModel         `gorm:"foreignKey:ClassesID;references:ID" json:"class,omitempty"`
	Selection *selectionModel.SelectionModel `gorm:"foreignKey:SelectionsID;references:ID" json:"selection,omitempty"`
	QRCode    *qrModel.QRCodeModel           `gorm:"foreignKey:StudentsID;references:ID" json:"qr_code,omitempty"`
}

func (StudentModel) TableName() string {
	return "students"
}

const UniqueNIS = "idx_students_nis_live"
