package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/newsdesk/internal/kv"
	"github.com/newsdesk/internal/models"

	"github.com/google/uuid"
)

// kvUserRecord KV 中保存的用户记录，包含密码哈希
type kvUserRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Deleted      bool      `json:"deleted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// KVUserRepository 基于键值存储的用户仓库
// 键布局：user:{id} 保存记录，user:email:{email} 保存 id
type KVUserRepository struct {
	store kv.Store
	now   func() time.Time
}

// NewKVUserRepository 创建 KV 用户仓库
func NewKVUserRepository(store kv.Store) *KVUserRepository {
	return &KVUserRepository{store: store, now: time.Now}
}

func userKey(id string) string {
	return "user:" + id
}

func userEmailKey(email string) string {
	return "user:email:" + normalizeEmail(email)
}

// GetByID 根据 ID 获取用户
func (r *KVUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	raw, err := r.store.Get(ctx, userKey(id))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var record kvUserRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode user %s failed: %w", id, err)
	}
	return record.toModel(), nil
}

// GetByEmail 根据邮箱获取用户
func (r *KVUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	id, err := r.store.Get(ctx, userEmailKey(email))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.GetByID(ctx, string(id))
}

// ListByIDs 批量获取用户，缺失的 id 直接跳过
func (r *KVUserRepository) ListByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if user != nil {
			users = append(users, *user)
		}
	}
	return users, nil
}

// Create 创建用户，邮箱索引通过 SetNX 保证唯一
func (r *KVUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Email = normalizeEmail(user.Email)
	now := r.now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	ok, err := r.store.SetNX(ctx, userEmailKey(user.Email), []byte(user.ID), 0)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicate
	}

	raw, err := json.Marshal(newKVUserRecord(user))
	if err != nil {
		_, _ = r.store.Del(ctx, userEmailKey(user.Email))
		return err
	}
	if err := r.store.Set(ctx, userKey(user.ID), raw, 0); err != nil {
		_, _ = r.store.Del(ctx, userEmailKey(user.Email))
		return err
	}
	return nil
}

func newKVUserRecord(user *models.User) kvUserRecord {
	return kvUserRecord{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Deleted:      user.Deleted,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func (r kvUserRecord) toModel() *models.User {
	return &models.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Deleted:      r.Deleted,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
