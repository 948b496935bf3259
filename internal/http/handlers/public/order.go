package public

import (
	"errors"
	"strings"

	"github.com/qbu-next/internal/constants"
	handlershared "github.com/qbu-next/internal/http/handlers/shared"
	"github.com/qbu-next/internal/http/response"
	"github.com/qbu-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 注文作成リクエスト
type CreateOrderRequest struct {
	Draft          service.ModelDraft                 `json:"draft"`
	Customer       service.CustomerInput              `json:"customer"`
	TicketCode     string                             `json:"ticket_code"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha"`
}

// CheckTicketRequest チケット事前確認リクエスト
type CheckTicketRequest struct {
	TicketCode string `json:"ticket_code" binding:"required"`
}

func (r CreateOrderRequest) toServiceInput(c *gin.Context) service.CreateOrderInput {
	return service.CreateOrderInput{
		Draft:      r.Draft,
		Customer:   r.Customer,
		TicketCode: strings.TrimSpace(r.TicketCode),
		Identity:   resolveGuestIdentity(c),
		ClientIP:   c.ClientIP(),
	}
}

// PreviewOrder 注文見積（確定しない）
func (h *Handler) PreviewOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, err)
		return
	}

	quote, err := h.OrderService.PreviewOrder(req.toServiceInput(c))
	if err != nil {
		respondWithMappedError(c, err,
			concatMappedHandlerErrors(orderQuoteErrorRules, ticketErrorRules),
			response.CodeInternal, "order_preview_failed")
		return
	}
	response.Success(c, quote)
}

// CreateOrder 注文を確定する
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, err)
		return
	}
	if h.CaptchaService != nil {
		if captchaErr := h.CaptchaService.Verify(constants.CaptchaSceneGuestCreateOrder, req.CaptchaPayload.ToServicePayload()); captchaErr != nil {
			switch {
			case errors.Is(captchaErr, service.ErrCaptchaRequired):
				respondError(c, response.CodeBadRequest, "captcha_required", nil)
			case errors.Is(captchaErr, service.ErrCaptchaInvalid):
				respondError(c, response.CodeBadRequest, "captcha_invalid", nil)
			case errors.Is(captchaErr, service.ErrCaptchaConfigInvalid):
				respondError(c, response.CodeInternal, "captcha_config_invalid", captchaErr)
			default:
				respondError(c, response.CodeInternal, "captcha_verify_failed", captchaErr)
			}
			return
		}
	}

	order, err := h.OrderService.SubmitOrder(req.toServiceInput(c))
	if err != nil {
		respondWithMappedError(c, err,
			concatMappedHandlerErrors(orderQuoteErrorRules, ticketErrorRules, orderSubmitExtraErrorRules),
			response.CodeInternal, "order_create_failed")
		return
	}
	// 確定レスポンスにも見積内訳を載せ、プレビューと同じ粒度で金額を返す
	data := gin.H{
		"order_no":                  order.OrderNo,
		"status":                    order.Status,
		"currency":                  order.Currency,
		"block_count":               order.BlockCount,
		"support_block_count":       order.SupportBlockCount,
		"volume_cm3":                order.VolumeCm3,
		"item_subtotal_yen":         order.ItemSubtotalYen,
		"shipping_yen":              order.ShippingYen,
		"total_before_discount_yen": order.TotalBeforeDiscountYen,
		"discount_yen":              order.DiscountYen,
		"total_yen":                 order.TotalYen,
		"breakdown":                 order.BreakdownJSON,
		"created_at":                order.CreatedAt,
	}
	if order.TicketID != nil {
		data["ticket_id"] = *order.TicketID
	}
	if order.Shipping != nil {
		data["shipping"] = gin.H{
			"zone":      order.Shipping.Zone,
			"size_tier": order.Shipping.SizeTier,
		}
	}
	response.Success(c, data)
}

// CheckTicket チケットコードの事前確認
// 適用可否と条件のみ返し、消費はしない。
func (h *Handler) CheckTicket(c *gin.Context) {
	var req CheckTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, err)
		return
	}

	terms, err := h.OrderService.CheckTicket(req.TicketCode, resolveGuestIdentity(c))
	if err != nil {
		respondWithMappedError(c, err, ticketErrorRules,
			response.CodeInternal, "ticket_check_failed")
		return
	}
	response.Success(c, gin.H{
		"valid":         true,
		"type":          terms.Type,
		"value":         terms.Value,
		"apply_scope":   terms.ApplyScope,
		"shipping_free": terms.ZeroesShipping(),
	})
}

// GetOrderByOrderNo 注文番号で注文を照会する
// 配送先住所の平文は返さない。地域とサイズ区分のみ開示する。
func (h *Handler) GetOrderByOrderNo(c *gin.Context) {
	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, nil)
		return
	}

	order, err := h.OrderService.GetOrderByNo(orderNo)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.NotFound(c, "order_not_found")
			return
		}
		respondError(c, response.CodeInternal, "order_fetch_failed", err)
		return
	}

	data := gin.H{
		"order_no":                  order.OrderNo,
		"status":                    order.Status,
		"currency":                  order.Currency,
		"block_count":               order.BlockCount,
		"support_block_count":       order.SupportBlockCount,
		"volume_cm3":                order.VolumeCm3,
		"item_subtotal_yen":         order.ItemSubtotalYen,
		"shipping_yen":              order.ShippingYen,
		"total_before_discount_yen": order.TotalBeforeDiscountYen,
		"discount_yen":              order.DiscountYen,
		"total_yen":                 order.TotalYen,
		"breakdown":                 order.BreakdownJSON,
		"created_at":                order.CreatedAt,
	}
	if order.Shipping != nil {
		data["shipping"] = gin.H{
			"zone":      order.Shipping.Zone,
			"size_tier": order.Shipping.SizeTier,
		}
	}
	response.Success(c, data)
}
