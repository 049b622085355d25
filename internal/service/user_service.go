package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/newsdesk/internal/cache"
	"github.com/newsdesk/internal/config"
	"github.com/newsdesk/internal/constants"
	"github.com/newsdesk/internal/events"
	"github.com/newsdesk/internal/logger"
	"github.com/newsdesk/internal/models"
	"github.com/newsdesk/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserService 用户注册与登录服务
type UserService struct {
	users        repository.UserStore
	tokens       *TokenIssuer
	publisher    events.Publisher
	captcha      *CaptchaService
	policy       config.PasswordPolicyConfig
	hashPassword func(password string) (string, error)
	now          func() time.Time
}

// NewUserService 创建用户服务
func NewUserService(users repository.UserStore, tokens *TokenIssuer, publisher events.Publisher, captcha *CaptchaService, policy config.PasswordPolicyConfig) *UserService {
	return &UserService{
		users:        users,
		tokens:       tokens,
		publisher:    publisher,
		captcha:      captcha,
		policy:       policy,
		hashPassword: bcryptHash,
		now:          time.Now,
	}
}

// RegisterInput 注册输入
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Captcha         CaptchaVerifyPayload
}

// LoginInput 登录输入
type LoginInput struct {
	Email    string
	Password string
	Captcha  CaptchaVerifyPayload
}

// UserProfile 对外暴露的用户信息
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResult 注册/登录结果
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserProfile
}

// CreateUser 注册新用户并签发令牌
func (s *UserService) CreateUser(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := normalizeUserEmail(input.Email)
	if email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return nil, ErrRegisterFieldsRequired
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(s.policy, input.Password); err != nil {
		return nil, err
	}
	if err := s.captcha.Verify(constants.CaptchaSceneRegister, input.Captcha); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user by email failed: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user failed: %w", err)
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.rememberAuthState(ctx, user)
	s.publish(ctx, constants.ChannelUserCreated, constants.ActionUserCreated, user)
	return result, nil
}

// LoginUser 校验邮箱密码并签发令牌
func (s *UserService) LoginUser(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := normalizeUserEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrLoginFieldsRequired
	}
	if err := s.captcha.Verify(constants.CaptchaSceneLogin, input.Captcha); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user by email failed: %w", err)
	}
	if user == nil || user.Deleted {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.rememberAuthState(ctx, user)
	s.publish(ctx, constants.ChannelUserLoggedIn, constants.ActionUserLoggedIn, user)
	return result, nil
}

// GetUserByID 获取用户信息（不含密码）
func (s *UserService) GetUserByID(ctx context.Context, id string) (*UserProfile, error) {
	user, err := s.users.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	if user == nil || user.Deleted {
		return nil, ErrUserNotFound
	}
	profile := toUserProfile(user)
	return &profile, nil
}

// ResolveAuthState 供鉴权中间件确认用户仍然有效，优先读缓存
func (s *UserService) ResolveAuthState(ctx context.Context, userID string) (*cache.UserAuthState, error) {
	state, hit, err := cache.GetUserAuthState(ctx, userID)
	if err != nil {
		logger.Warnw("user_auth_state_cache_get_failed", "user_id", userID, "error", err)
	} else if hit && state != nil {
		return state, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	s.rememberAuthState(ctx, user)
	return cache.BuildUserAuthState(user), nil
}

// Tokens 返回令牌签发器
func (s *UserService) Tokens() *TokenIssuer {
	return s.tokens
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserProfile(user),
	}, nil
}

// publish 发布用户事件，失败只记录日志
func (s *UserService) publish(ctx context.Context, channel, action string, user *models.User) {
	if s.publisher == nil {
		return
	}
	event := events.NewUserEvent(action, user.ID, user.Email, s.now())
	if err := s.publisher.Publish(ctx, channel, event); err != nil {
		logger.Warnw("user_event_publish_failed",
			"channel", channel,
			"user_id", user.ID,
			"error", err,
		)
	}
}

func (s *UserService) rememberAuthState(ctx context.Context, user *models.User) {
	if err := cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user)); err != nil {
		logger.Warnw("user_auth_state_cache_set_failed", "user_id", user.ID, "error", err)
	}
}

func toUserProfile(user *models.User) UserProfile {
	return UserProfile{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func normalizeUserEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func bcryptHash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
