package models

import (
	"errors"
	"strings"

	"github.com/newsdesk/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultCategory 默认分类定义
type DefaultCategory struct {
	Name        string
	Description string
	Color       string
	ColorActive string
}

// DefaultCategories 内置分类
var DefaultCategories = []DefaultCategory{
	{Name: "Technology", Description: "Software, gadgets and the internet", Color: "bg-blue-100", ColorActive: "bg-blue-600"},
	{Name: "Health", Description: "Medicine, fitness and wellbeing", Color: "bg-green-100", ColorActive: "bg-green-600"},
	{Name: "Business", Description: "Markets, companies and the economy", Color: "bg-yellow-100", ColorActive: "bg-yellow-600"},
	{Name: "Other", Description: "Everything else", Color: "bg-gray-100", ColorActive: "bg-gray-600"},
}

// InitDefaultCategories 初始化内置分类，已存在的按名称跳过
func InitDefaultCategories(db *gorm.DB) error {
	for _, item := range DefaultCategories {
		var count int64
		if err := db.Model(&Category{}).Where("name = ?", item.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		category := Category{
			Name:        item.Name,
			Description: item.Description,
			Slug:        strings.ToLower(item.Name),
			Color:       item.Color,
			ColorActive: item.ColorActive,
		}
		if err := db.Create(&category).Error; err != nil {
			return err
		}
		logger.Infow("default_category_created", "name", item.Name)
	}
	return nil
}

// InitDefaultUser 初始化默认账号，邮箱已存在时直接返回
func InitDefaultUser(db *gorm.DB, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var existing User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	logger.Warnw("default_user_created", "email", email, "password_hidden", true)
	return &user, nil
}
