package users

import (
	"errors"

	"github.com/newsdesk/internal/http/handlers/shared"
	"github.com/newsdesk/internal/http/response"
	"github.com/newsdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha 获取图片验证码挑战
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		shared.RespondError(c, response.CodeInternal, "Captcha unavailable", service.ErrCaptchaConfigInvalid)
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaConfigInvalid):
			shared.RespondError(c, response.CodeBadRequest, "Captcha unavailable", nil)
		default:
			shared.RespondError(c, response.CodeInternal, "Failed to generate captcha", err)
		}
		return
	}

	response.Success(c, gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}
