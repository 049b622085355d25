package models

import "time"

// Category 分类表
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`                               // 主键
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // 名称
	Description string    `gorm:"type:text" json:"description"`                       // 描述
	Slug        string    `gorm:"type:varchar(100)" json:"slug"`                      // 唯一标识
	Color       string    `gorm:"type:varchar(50)" json:"color"`                      // 展示颜色
	ColorActive string    `gorm:"type:varchar(50)" json:"color_active"`               // 选中颜色
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                            // 创建时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
