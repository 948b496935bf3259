package admin

import (
	"errors"

	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/http/response"
	"github.com/qbu-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCaptchaSettings 画像認証設定を取得
func (h *Handler) GetCaptchaSettings(c *gin.Context) {
	setting, err := h.SettingService.GetCaptchaSetting(h.Config.Captcha)
	if err != nil {
		respondError(c, response.CodeInternal, "settings_fetch_failed", err)
		return
	}
	response.Success(c, setting)
}

// UpdateCaptchaSettings 画像認証設定を更新
func (h *Handler) UpdateCaptchaSettings(c *gin.Context) {
	var req service.CaptchaSetting
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, err)
		return
	}

	setting, err := h.SettingService.UpdateCaptchaSetting(req)
	if err != nil {
		if errors.Is(err, service.ErrCaptchaConfigInvalid) {
			respondError(c, response.CodeBadRequest, "captcha_config_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "settings_save_failed", err)
		return
	}

	if h.CaptchaService != nil {
		h.CaptchaService.InvalidateCache()
	}
	response.Success(c, setting)
}
