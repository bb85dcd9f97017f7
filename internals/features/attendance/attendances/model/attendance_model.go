package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/dbtime"
)

// AttendanceModel: satu baris per siswa per tanggal
type AttendanceModel struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentsID uuid.UUID      `gorm:"column:students_id;type:uuid;not null;uniqueIndex:idx_attendences_student_tanggal,priority:1" json:"students_id"`
	ClassesID  uuid.UUID      `gorm:"column:classes_id;type:uuid;not null;index" json:"classes_id"`
	Tanggal    datatypes.Date `gorm:"column:tanggal;type:date;not null;uniqueIndex:idx_attendences_student_tanggal,priority:2;index" json:"tanggal"`
	JamMasuk   *dbtime.Tod    `gorm:"column:jam_masuk;type:time" json:"jam_masuk"`
	JamPulang  *dbtime.Tod    `gorm:"column:jam_pulang;type:time" json:"jam_pulang"`
	Kehadiran  string         `gorm:"column:kehadiran;type:varchar(20);not null;default:'Tanpa Keterangan'" json:"kehadiran"`
	Keterangan *string        `gorm:"column:keterangan;type:text" json:"keterangan"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AttendanceModel) TableName() string {
	return "attendences"
}

const UniqueStudentTanggal = "idx_attendences_student_tanggal"
