package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/newsdesk/internal/config"
	"github.com/newsdesk/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenExpireHours = 168

// UserJWTClaims 用户令牌声明
type UserJWTClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer 签发与解析 HS256 用户令牌
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer 创建令牌签发器
func NewTokenIssuer(cfg config.JWTConfig) *TokenIssuer {
	hours := cfg.ExpireHours
	if hours <= 0 {
		hours = defaultTokenExpireHours
	}
	return &TokenIssuer{
		secret: []byte(strings.TrimSpace(cfg.SecretKey)),
		ttl:    time.Duration(hours) * time.Hour,
		now:    time.Now,
	}
}

// Issue 为用户签发令牌
func (i *TokenIssuer) Issue(user *models.User) (string, time.Time, error) {
	if len(i.secret) == 0 {
		return "", time.Time{}, ErrTokenSecretMissing
	}
	now := i.now()
	expiresAt := now.Add(i.ttl)
	claims := UserJWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token failed: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse 校验并解析令牌
func (i *TokenIssuer) Parse(tokenString string) (*UserJWTClaims, error) {
	if len(i.secret) == 0 {
		return nil, ErrTokenSecretMissing
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(strings.TrimSpace(tokenString), claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
