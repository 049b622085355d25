package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`               // 主键（uuid）
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"` // 邮箱
	PasswordHash string    `gorm:"not null" json:"-"`                                   // 密码哈希（不返回给前端）
	Deleted      bool      `gorm:"not null;default:false" json:"-"`                     // 软删除标记
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// BeforeCreate 生成 uuid 主键
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
