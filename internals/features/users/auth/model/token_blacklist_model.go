package model

import (
	"time"

	"gorm.io/gorm"
)

// TokenBlacklist: token yang sudah logout, disimpan sebagai HMAC hash
type TokenBlacklist struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Token     string         `gorm:"column:token;type:text;not null;uniqueIndex:idx_token_blacklist_token" json:"token"`
	ExpiredAt time.Time      `gorm:"column:expired_at;not null;index" json:"expired_at"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
