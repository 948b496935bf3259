package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/http/response"
	"github.com/qbu-next/internal/models"
	"github.com/qbu-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ShippingRateRequest 料金表セルの入力
type ShippingRateRequest struct {
	Zone     string `json:"zone" binding:"required"`
	SizeTier string `json:"size_tier" binding:"required"`
	PriceYen int64  `json:"price_yen"`
}

// ActivateShippingRequest 配送料金表の有効化リクエスト
type ActivateShippingRequest struct {
	Name          string                `json:"name" binding:"required"`
	EffectiveFrom *time.Time            `json:"effective_from"`
	Rates         []ShippingRateRequest `json:"rates" binding:"required"`
}

// ActivateShippingConfig 新しい配送料金表を作成して有効化
func (h *Handler) ActivateShippingConfig(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req ActivateShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, err)
		return
	}

	rates := make([]service.ShippingRateInput, 0, len(req.Rates))
	for _, rate := range req.Rates {
		rates = append(rates, service.ShippingRateInput{
			Zone:     rate.Zone,
			SizeTier: rate.SizeTier,
			PriceYen: models.NewMoneyFromYen(rate.PriceYen),
		})
	}

	config, err := h.ShippingAdminService.Activate(service.ActivateShippingInput{
		Name:          req.Name,
		EffectiveFrom: req.EffectiveFrom,
		Rates:         rates,
	})
	if err != nil {
		if errors.Is(err, service.ErrShippingMatrixInvalid) {
			respondError(c, response.CodeBadRequest, "shipping_matrix_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "save_failed", err)
		return
	}

	h.enqueueConfigAudit(c, adminID, "shipping_config", config.ID)
	response.Success(c, config)
}

// GetActiveShippingConfig 有効な配送料金表を取得
func (h *Handler) GetActiveShippingConfig(c *gin.Context) {
	config, err := h.ShippingAdminService.GetActive()
	if err != nil {
		respondError(c, response.CodeInternal, "config_fetch_failed", err)
		return
	}
	response.Success(c, config)
}

// GetShippingConfig 配送料金表の詳細を取得
func (h *Handler) GetShippingConfig(c *gin.Context) {
	id, ok := parseUintNullable(c.Param("id"))
	if !ok || id == 0 {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, nil)
		return
	}

	config, err := h.ShippingAdminService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "shipping_config_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "config_fetch_failed", err)
		return
	}
	response.Success(c, config)
}

// ListShippingConfigs 配送料金表の履歴を取得
func (h *Handler) ListShippingConfigs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	configs, total, err := h.ShippingAdminService.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "config_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, configs, buildPagination(page, pageSize, total))
}
