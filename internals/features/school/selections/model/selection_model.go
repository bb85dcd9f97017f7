package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SelectionModel: rombongan belajar (rombel)
type SelectionModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	NamaRombel string    `gorm:"column:nama_rombel;type:varchar(100);not null;uniqueIndex:idx_selections_nama_rombel_live,where:deleted_at IS NULL" json:"nama_rombel"`

	ModifiedBy *uuid.UUID     `gorm:"column:modified_by;type:uuid" json:"modified_by,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (SelectionModel) TableName() string {
	return "selections"
}

const UniqueNamaRombel = "idx_selections_nama_rombel_live"
