package public

import (
	"errors"

	"github.com/qbu-next/internal/http/response"
	"github.com/qbu-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha 画像認証チャレンジを取得
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		respondError(c, response.CodeInternal, "captcha_unavailable", service.ErrCaptchaConfigInvalid)
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaConfigInvalid):
			respondError(c, response.CodeBadRequest, "captcha_unavailable", nil)
		default:
			respondError(c, response.CodeInternal, "captcha_generate_failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}
