package public

import (
	"time"

	"github.com/qbu-next/internal/cache"
	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/http/response"
	"github.com/qbu-next/internal/logger"
	"github.com/qbu-next/internal/pricing"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig 公開サイト設定を取得
// サイト名や対応サイズ区分など、注文画面が必要とする静的情報を返す。
func (h *Handler) GetConfig(c *gin.Context) {
	defaults := map[string]interface{}{
		"site_name":  "Q-BU!",
		"currency":   constants.SiteCurrencyDefault,
		"size_tiers": pricing.SizeTiers,
		"zones":      pricing.Zones,
		"scale_modes": []string{
			constants.ScaleModeMaxSide,
			constants.ScaleModeBlockEdge,
		},
	}

	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	data, err := h.SettingService.GetConfig(defaults)
	if err != nil {
		respondError(c, response.CodeInternal, "config_fetch_failed", err)
		return
	}

	if h.CaptchaService != nil {
		publicCaptcha, captchaErr := h.CaptchaService.GetPublicSetting()
		if captchaErr != nil {
			respondError(c, response.CodeInternal, "config_fetch_failed", captchaErr)
			return
		}
		data["captcha"] = publicCaptcha
	}

	if err := cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL); err != nil {
		logger.Debugw("public_config_cache_store_failed", "error", err)
	}
	response.Success(c, data)
}
