package cache

import (
	"context"
	"time"

	"github.com/newsdesk/internal/models"
)

const authStateCacheTTL = 5 * time.Minute

// UserAuthState 用户鉴权快照，仅用于服务端 Redis 缓存
type UserAuthState struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Deleted   bool   `json:"deleted"`
	UpdatedAt int64  `json:"updated_at"`
}

func userAuthStateKey(userID string) string {
	return "auth:user:" + userID
}

// BuildUserAuthState 从用户模型构建鉴权快照
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	return &UserAuthState{
		UserID:    user.ID,
		Email:     user.Email,
		Deleted:   user.Deleted,
		UpdatedAt: time.Now().Unix(),
	}
}

// GetUserAuthState 获取用户鉴权快照
func GetUserAuthState(ctx context.Context, userID string) (*UserAuthState, bool, error) {
	if userID == "" {
		return nil, false, nil
	}
	var state UserAuthState
	hit, err := GetJSON(ctx, userAuthStateKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetUserAuthState 写入用户鉴权快照
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == "" {
		return nil
	}
	return SetJSON(ctx, userAuthStateKey(state.UserID), state, authStateCacheTTL)
}

// DelUserAuthState 删除用户鉴权快照
func DelUserAuthState(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return Del(ctx, userAuthStateKey(userID))
}
