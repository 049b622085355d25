package users

import (
	"errors"

	"github.com/newsdesk/internal/http/handlers/shared"
	"github.com/newsdesk/internal/http/response"
	"github.com/newsdesk/internal/service"

	"github.com/gin-gonic/gin"
)

var captchaErrorRules = []shared.MappedError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Message: "Captcha is required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Message: "Captcha is invalid"},
}

var registerErrorRules = []shared.MappedError{
	{Target: service.ErrRegisterFieldsRequired, Code: response.CodeBadRequest, Message: "Email, password, and confirmPassword are required"},
	{Target: service.ErrPasswordMismatch, Code: response.CodeBadRequest, Message: "Passwords do not match"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Message: "Invalid email format"},
	{Target: service.ErrUserExists, Code: response.CodeConflict, Message: "User with this email already exists"},
}

var loginErrorRules = []shared.MappedError{
	{Target: service.ErrLoginFieldsRequired, Code: response.CodeBadRequest, Message: "Email and password are required"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Message: "Invalid email or password"},
}

type policyMessage interface {
	Message() string
}

func respondRegisterError(c *gin.Context, err error) {
	// 密码策略错误自带可读提示
	var perr policyMessage
	if errors.Is(err, service.ErrWeakPassword) && errors.As(err, &perr) {
		shared.RespondError(c, response.CodeBadRequest, perr.Message(), nil)
		return
	}
	rules := shared.ConcatMappedErrors(registerErrorRules, captchaErrorRules)
	shared.RespondWithMappedError(c, err, rules, response.CodeInternal, msgInternalError)
}

func respondLoginError(c *gin.Context, err error) {
	rules := shared.ConcatMappedErrors(loginErrorRules, captchaErrorRules)
	shared.RespondWithMappedError(c, err, rules, response.CodeInternal, msgInternalError)
}
