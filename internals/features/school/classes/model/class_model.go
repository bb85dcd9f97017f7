package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	scheduleModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/schedules/model"
	selectionModel "github.com/naufaladysaputro/be-absensi-qrcode/internals/features/school/selections/model"
)

type ClassModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	NamaKelas    string    `gorm:"column:nama_kelas;type:varchar(100);not null;uniqueIndex:idx_classes_selection_nama_live,priority:2,where:deleted_at IS NULL" json:"nama_kelas"`
	SelectionsID uuid.UUID `gorm:"column:selections_id;type:uuid;not null;uniqueIndex:idx_classes_selection_nama_live,priority:1,where:deleted_at IS NULL" json:"selections_id"`

	ModifiedBy *uuid.UUID     `gorm:"column:modified_by;type:uuid" json:"modified_by,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`

	Selection *selectionModel.SelectionModel `gorm:"foreignKey:SelectionsID;references:ID" json:"selection,omitempty"`
	Schedules []scheduleModel.ScheduleModel  `gorm:"foreignKey:ClassesID;references:ID" json:"schedule,omitempty"`
}

func (ClassModel) TableName() string {
	return "classes"
}

const UniqueSelectionNama = "idx_classes_selection_nama_live"
