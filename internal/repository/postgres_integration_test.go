//go:build integration
// +build integration

package repository

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/newsdesk/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.Post{},
		&models.Category{},
		&models.User{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresPostListCategoryCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	for _, post := range []*models.Post{
		{Header: "a", Content: "a", AuthorID: "u1", Category: "Technology", IsPublished: true, Slug: "a"},
		{Header: "b", Content: "b", AuthorID: "u1", Category: "Health", IsPublished: true, Slug: "b"},
	} {
		if err := repo.Create(ctx, post); err != nil {
			t.Fatalf("create post failed: %v", err)
		}
	}

	_, total, err := repo.List(ctx, PostListFilter{PageSize: 10, Category: "TECHNOLOGY"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("want 1 got %d", total)
	}
}

func TestPostgresDuplicateEmailTranslated(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &models.User{Email: "dup@x.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if err := repo.Create(ctx, &models.User{Email: "dup@x.com", PasswordHash: "h"}); err != ErrDuplicate {
		t.Fatalf("want ErrDuplicate got %v", err)
	}
}
