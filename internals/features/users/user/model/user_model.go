// file: internals/features/users/user/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username string    `gorm:"column:username;type:varchar(50);not null;uniqueIndex:idx_users_username_live,where:deleted_at IS NULL" json:"username"`
	Email    string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:idx_users_email_live,where:deleted_at IS NULL" json:"email"`
	Password string    `gorm:"column:password;type:text;not null" json:"-"`
	Role     string    `gorm:"column:role;type:varchar(10);not null;default:'guru'" json:"role"`

	ModifiedBy *uuid.UUID     `gorm:"column:modified_by;type:uuid" json:"modified_by,omitempty"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (UserModel) TableName() string {
	return "users"
}

// Nama constraint unik, dipakai untuk memetakan error 23505
const (
	UniqueUsername = "idx_users_username_live"
	UniqueEmail    = "idx_users_email_live"
)
