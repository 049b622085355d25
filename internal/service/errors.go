package service

import "errors"

// 文章相关错误
var (
	ErrPostNotFound        = errors.New("post not found")
	ErrAuthorNotFound      = errors.New("author not found")
	ErrPostInvalid         = errors.New("post header and content are required")
	ErrSlugExists          = errors.New("post slug already exists")
	ErrPostUpdateForbidden = errors.New("post update forbidden for non-author")
	ErrPostDeleteForbidden = errors.New("post delete forbidden for non-author")
)

// 用户相关错误
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserExists             = errors.New("user email already exists")
	ErrRegisterFieldsRequired = errors.New("register fields required")
	ErrPasswordMismatch       = errors.New("passwords do not match")
	ErrInvalidEmail           = errors.New("invalid email format")
	ErrWeakPassword           = errors.New("password does not meet policy")
	ErrLoginFieldsRequired    = errors.New("login fields required")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidToken           = errors.New("invalid token")
	ErrTokenSecretMissing     = errors.New("jwt secret is not configured")
)

// 日志相关错误
var (
	ErrLogDataRequired = errors.New("log data is required")
	ErrLogSinkMissing  = errors.New("log sink is not configured")
)

// 验证码相关错误
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha not enabled")
)
