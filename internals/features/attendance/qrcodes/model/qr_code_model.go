package model

import (
	"time"

	"github.com/google/uuid"
)

// QRCodeModel: satu QR code per siswa. Tidak soft delete, regenerate = hapus + buat lagi.
type QRCodeModel struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentsID  uuid.UUID  `gorm:"column:students_id;type:uuid;not null;uniqueIndex:idx_qr_codes_students_student" json:"students_id"`
	UniqueCode  string     `gorm:"column:unique_code;type:varchar(100);not null;uniqueIndex:idx_qr_codes_students_code" json:"unique_code"`
	QRPath      string     `gorm:"column:qr_path;type:text;not null" json:"qr_path"`
	GeneratedBy *uuid.UUID `gorm:"column:generated_by;type:uuid" json:"generated_by,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (QRCodeModel) TableName() string {
	return "qr_codes_students"
}

const (
	UniqueStudent = "idx_qr_codes_students_student"
	UniqueCode    = "idx_qr_codes_students_code"
)
