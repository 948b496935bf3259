package admin

import (
	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetSiteSettings サイト設定を取得
func (h *Handler) GetSiteSettings(c *gin.Context) {
	setting, err := h.SettingService.GetByKey(constants.SettingKeySiteConfig)
	if err != nil {
		respondError(c, response.CodeInternal, "settings_fetch_failed", err)
		return
	}
	response.Success(c, setting)
}

// UpdateSiteSettings サイト設定を更新
func (h *Handler) UpdateSiteSettings(c *gin.Context) {
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, err)
		return
	}

	setting, err := h.SettingService.Update(constants.SettingKeySiteConfig, req)
	if err != nil {
		respondError(c, response.CodeInternal, "settings_save_failed", err)
		return
	}
	response.Success(c, setting)
}

// GetOrderSettings 注文設定（余白・注文番号プレフィックス）を取得
func (h *Handler) GetOrderSettings(c *gin.Context) {
	setting, err := h.SettingService.GetByKey(constants.SettingKeyOrderConfig)
	if err != nil {
		respondError(c, response.CodeInternal, "settings_fetch_failed", err)
		return
	}
	response.Success(c, setting)
}

// UpdateOrderSettings 注文設定を更新
func (h *Handler) UpdateOrderSettings(c *gin.Context) {
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, err)
		return
	}

	setting, err := h.SettingService.Update(constants.SettingKeyOrderConfig, req)
	if err != nil {
		respondError(c, response.CodeInternal, "settings_save_failed", err)
		return
	}
	response.Success(c, setting)
}
