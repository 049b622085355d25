package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/newsdesk/internal/config"
	"github.com/newsdesk/internal/constants"
	"github.com/newsdesk/internal/kv"
	"github.com/newsdesk/internal/logger"

	"github.com/mojocn/base64Captcha"
)

const (
	captchaCharset        = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	captchaKeyPrefix      = "captcha:"
	captchaStoreTimeout   = 2 * time.Second
	defaultCaptchaExpires = 300
)

// CaptchaVerifyPayload 验证码校验请求载荷
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 验证码服务
// 按场景开关决定是否需要验证码，答案保存在 kv.Store 中
type CaptchaService struct {
	cfg   config.CaptchaConfig
	store base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig, store kv.Store) *CaptchaService {
	expire := cfg.Image.ExpireSeconds
	if expire <= 0 {
		expire = defaultCaptchaExpires
	}
	return &CaptchaService{
		cfg:   cfg,
		store: newKVCaptchaStore(store, time.Duration(expire)*time.Second),
	}
}

// IsSceneEnabled 场景是否需要验证码
func (s *CaptchaService) IsSceneEnabled(scene string) bool {
	if s == nil || s.cfg.Provider != constants.CaptchaProviderImage {
		return false
	}
	switch scene {
	case constants.CaptchaSceneLogin:
		return s.cfg.Scenes.Login
	case constants.CaptchaSceneRegister:
		return s.cfg.Scenes.Register
	default:
		return false
	}
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if s == nil || s.cfg.Provider != constants.CaptchaProviderImage {
		return nil, ErrCaptchaConfigInvalid
	}

	image := s.cfg.Image
	driver := base64Captcha.NewDriverString(
		image.Height,
		image.Width,
		image.NoiseCount,
		image.ShowLine,
		image.Length,
		captchaCharset,
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.store)
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}

	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 按场景校验验证码，未开启的场景直接放行
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	if !s.IsSceneEnabled(scene) {
		return nil
	}
	captchaID := strings.TrimSpace(payload.CaptchaID)
	captchaCode := strings.TrimSpace(payload.CaptchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}
	if !s.store.Verify(captchaID, captchaCode, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

// kvCaptchaStore 以 kv.Store 实现 base64Captcha.Store，多实例部署时共享答案
type kvCaptchaStore struct {
	store kv.Store
	ttl   time.Duration
}

func newKVCaptchaStore(store kv.Store, ttl time.Duration) *kvCaptchaStore {
	return &kvCaptchaStore{store: store, ttl: ttl}
}

func (s *kvCaptchaStore) Set(id string, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), captchaStoreTimeout)
	defer cancel()
	return s.store.Set(ctx, captchaKeyPrefix+id, []byte(value), s.ttl)
}

func (s *kvCaptchaStore) Get(id string, clear bool) string {
	ctx, cancel := context.WithTimeout(context.Background(), captchaStoreTimeout)
	defer cancel()
	key := captchaKeyPrefix + id
	value, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logger.Warnw("captcha_store_get_failed", "captcha_id", id, "error", err)
		}
		return ""
	}
	if clear {
		if _, err := s.store.Del(ctx, key); err != nil {
			logger.Warnw("captcha_store_del_failed", "captcha_id", id, "error", err)
		}
	}
	return string(value)
}

func (s *kvCaptchaStore) Verify(id, answer string, clear bool) bool {
	stored := s.Get(id, clear)
	if stored == "" {
		return false
	}
	return strings.EqualFold(stored, strings.TrimSpace(answer))
}
