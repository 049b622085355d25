package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post 新闻文章表
type Post struct {
	ID              string      `gorm:"primaryKey;type:varchar(36)" json:"id"`            // 主键（uuid）
	Header          string      `gorm:"type:varchar(255);not null" json:"header"`         // 标题
	Content         string      `gorm:"type:text;not null" json:"content"`                // 正文
	Excerpt         string      `gorm:"type:text" json:"excerpt"`                         // 摘要
	Image           string      `gorm:"type:varchar(500)" json:"image"`                   // 封面图
	Category        string      `gorm:"type:varchar(100);index" json:"category"`          // 分类名称
	CategoryKey     string      `gorm:"type:varchar(100);index" json:"-"`                 // 小写分类名，用于不区分大小写的筛选
	Tags            StringArray `gorm:"type:text" json:"tags"`                            // 标签
	AuthorID        string      `gorm:"type:varchar(36);not null;index" json:"author_id"` // 作者
	IsPublished     bool        `gorm:"not null;index" json:"is_published"`               // 是否发布
	IsFeatured      bool        `gorm:"not null;default:false" json:"is_featured"`        // 是否推荐
	ViewsCount      int64       `gorm:"not null;default:0" json:"views_count"`            // 浏览数
	LikesCount      int64       `gorm:"not null;default:0" json:"likes_count"`            // 点赞数
	Slug            string      `gorm:"type:varchar(300);uniqueIndex;not null" json:"slug"`
	MetaTitle       string      `gorm:"type:varchar(255)" json:"meta_title"`
	MetaDescription string      `gorm:"type:text" json:"meta_description"`
	ReadingTime     int         `gorm:"not null;default:1" json:"reading_time"` // 阅读时长（分钟）
	CreatedAt       time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	PublishedAt     *time.Time  `gorm:"index" json:"published_at"`
	Deleted         bool        `gorm:"not null;default:false;index" json:"deleted"` // 软删除标记

	AuthorEmail string `gorm:"-" json:"author_email"` // 关联作者邮箱（只读投影）
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}

// BeforeCreate 生成 uuid 主键
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave 同步小写分类名，SQLite 的 LOWER 只处理 ASCII
func (p *Post) BeforeSave(tx *gorm.DB) error {
	p.CategoryKey = CategoryKey(p.Category)
	return nil
}

// CategoryKey 分类筛选键
func CategoryKey(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
