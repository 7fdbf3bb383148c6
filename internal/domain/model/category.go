package model

import (
	"strings"
	"time"
)

// nameは大文字小文字を区別せずに一意（name_keyのunique indexで保証）
type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	NameKey   string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// CategoryNameKey は一意判定用の小文字キー
func CategoryNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
