package model

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleModel: file jadwal pelajaran per kelas. Hapus = hapus permanen.
type ScheduleModel struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClassesID    uuid.UUID  `gorm:"column:classes_id;type:uuid;not null;index" json:"classes_id"`
	SchedulePath string     `gorm:"column:schedule_path;type:text;not null" json:"schedule_path"`
	ModifiedBy   *uuid.UUID `gorm:"column:modified_by;type:uuid" json:"modified_by,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ScheduleModel) TableName() string {
	return "schedules"
}
