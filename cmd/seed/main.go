package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/newsdesk/internal/config"
	"github.com/newsdesk/internal/logger"
	"github.com/newsdesk/internal/models"
	"github.com/newsdesk/internal/service"
)

const (
	seedUserEmail    = "admin@example.com"
	seedUserPassword = "password123"
	seedPostCount    = 20
)

var seedTopics = []string{
	"Quantum Chips Reach New Milestone",
	"Morning Routines That Actually Work",
	"Startups Rethink Remote Hiring",
	"Why Sleep Matters More Than You Think",
	"The Quiet Rise of Edge Computing",
}

var seedTags = [][]string{
	{"innovation", "research"},
	{"lifestyle", "habits"},
	{"markets", "startups"},
	{"wellbeing"},
	{"cloud", "infrastructure"},
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.LogLevel, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(models.DB); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.InitDefaultCategories(models.DB); err != nil {
		stdLog.Fatalf("Failed to seed categories: %v", err)
	}

	author, err := models.InitDefaultUser(models.DB, seedUserEmail, seedUserPassword)
	if err != nil {
		stdLog.Fatalf("Failed to seed user: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0
	for i := 0; i < seedPostCount; i++ {
		post := buildSeedPost(i, author.ID, rng)
		var count int64
		if err := models.DB.Model(&models.Post{}).Where("slug = ?", post.Slug).Count(&count).Error; err != nil {
			stdLog.Fatalf("Failed to check post slug: %v", err)
		}
		if count > 0 {
			continue
		}
		if err := models.DB.Create(post).Error; err != nil {
			stdLog.Fatalf("Failed to seed post: %v", err)
		}
		created++
	}

	fmt.Printf("Seed finished: user=%s posts_created=%d\n", author.Email, created)
}

// buildSeedPost 约 90% 已发布，约 20% 推荐
func buildSeedPost(index int, authorID string, rng *rand.Rand) *models.Post {
	topic := seedTopics[index%len(seedTopics)]
	category := models.DefaultCategories[index%len(models.DefaultCategories)].Name
	header := fmt.Sprintf("%s #%d", topic, index+1)
	content := fmt.Sprintf("%s. This sample article covers %s in some depth so the listing pages have realistic text to render.", header, category)

	post := &models.Post{
		Header:          header,
		Content:         content,
		Excerpt:         topic,
		Category:        category,
		Tags:            models.StringArray(seedTags[index%len(seedTags)]),
		AuthorID:        authorID,
		IsPublished:     rng.Float64() < 0.9,
		IsFeatured:      rng.Float64() < 0.2,
		ViewsCount:      rng.Int63n(1000),
		LikesCount:      rng.Int63n(100),
		Slug:            service.Slugify(header),
		MetaTitle:       header,
		MetaDescription: topic,
		ReadingTime:     service.ReadingTime(content),
	}
	if post.IsPublished {
		publishedAt := time.Now().Add(-time.Duration(index) * time.Hour)
		post.PublishedAt = &publishedAt
	}
	return post
}
