package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/http/response"
	"github.com/qbu-next/internal/models"
	"github.com/qbu-next/internal/queue"
	"github.com/qbu-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ActivatePricingRequest 価格設定の有効化リクエスト
type ActivatePricingRequest struct {
	BaseFeeYen      int64      `json:"base_fee_yen"`
	PerCm3Yen       int64      `json:"per_cm3_yen"`
	MinFeeYen       int64      `json:"min_fee_yen"`
	RoundingStepYen int64      `json:"rounding_step_yen"`
	Currency        string     `json:"currency"`
	EffectiveFrom   *time.Time `json:"effective_from"`
}

// ActivatePricingConfig 新しい価格設定を作成して有効化
func (h *Handler) ActivatePricingConfig(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req ActivatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, err)
		return
	}

	config, err := h.PricingAdminService.Activate(service.ActivatePricingInput{
		BaseFeeYen:      models.NewMoneyFromYen(req.BaseFeeYen),
		PerCm3Yen:       models.NewMoneyFromYen(req.PerCm3Yen),
		MinFeeYen:       models.NewMoneyFromYen(req.MinFeeYen),
		RoundingStepYen: models.NewMoneyFromYen(req.RoundingStepYen),
		Currency:        req.Currency,
		EffectiveFrom:   req.EffectiveFrom,
	})
	if err != nil {
		if errors.Is(err, service.ErrPricingConfigInvalid) {
			respondError(c, response.CodeBadRequest, "pricing_config_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "save_failed", err)
		return
	}

	h.enqueueConfigAudit(c, adminID, "pricing_config", config.ID)
	response.Success(c, config)
}

// GetActivePricingConfig 有効な価格設定を取得
func (h *Handler) GetActivePricingConfig(c *gin.Context) {
	config, err := h.PricingAdminService.GetActive()
	if err != nil {
		respondError(c, response.CodeInternal, "config_fetch_failed", err)
		return
	}
	response.Success(c, config)
}

// ListPricingConfigs 価格設定の履歴を取得
func (h *Handler) ListPricingConfigs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	configs, total, err := h.PricingAdminService.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "config_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, configs, buildPagination(page, pageSize, total))
}

// enqueueConfigAudit 設定変更の監査タスクを投入する（失敗しても本処理は通す）
func (h *Handler) enqueueConfigAudit(c *gin.Context, adminID uint, configKind string, configID uint) {
	if h.QueueClient == nil || !h.QueueClient.Enabled() {
		return
	}
	err := h.QueueClient.EnqueueAdminConfigAudit(queue.AdminConfigAuditPayload{
		AdminID:    adminID,
		Username:   getAdminUsername(c),
		ConfigKind: configKind,
		ConfigID:   configID,
	})
	if err != nil {
		requestLog(c).Warnw("admin_config_audit_enqueue_failed",
			"admin_id", adminID,
			"config_kind", configKind,
			"config_id", configID,
			"error", err,
		)
	}
}
