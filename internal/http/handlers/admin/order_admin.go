package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/http/response"
	"github.com/qbu-next/internal/repository"
	"github.com/qbu-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListAdminOrders 注文一覧を取得
func (h *Handler) ListAdminOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	ticketID, ok := parseUintNullable(c.Query("ticket_id"))
	if !ok {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, nil)
		return
	}
	createdFrom, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, err)
		return
	}
	createdTo, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, err)
		return
	}

	orders, total, err := h.OrderService.ListAdmin(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      strings.TrimSpace(c.Query("status")),
		OrderNo:     strings.TrimSpace(c.Query("order_no")),
		Email:       strings.TrimSpace(c.Query("email")),
		Zone:        strings.TrimSpace(c.Query("zone")),
		TicketID:    ticketID,
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "order_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, orders, buildPagination(page, pageSize, total))
}

// GetAdminOrder 注文詳細を取得
func (h *Handler) GetAdminOrder(c *gin.Context) {
	id, ok := parseUintNullable(c.Param("id"))
	if !ok || id == 0 {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, nil)
		return
	}

	order, err := h.OrderService.GetOrder(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "order_fetch_failed", err)
		return
	}

	response.Success(c, order)
}

// GetAdminOrderShippingAddress 注文の配送先住所を復号して返す
// 平文住所は保存されないため、印刷・発送時にのみこのエンドポイントで取得する。
func (h *Handler) GetAdminOrderShippingAddress(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, idOK := parseUintNullable(c.Param("id"))
	if !idOK || id == 0 {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, nil)
		return
	}

	address, err := h.OrderService.DecryptShippingAddress(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order_not_found", nil)
		case errors.Is(err, service.ErrShippingCryptoNotReady):
			respondError(c, response.CodeInternal, constants.ErrCodeShippingCryptoMissing, err)
		default:
			respondError(c, response.CodeInternal, "shipping_decrypt_failed", err)
		}
		return
	}

	requestLog(c).Infow("admin_order_address_revealed",
		"admin_id", adminID,
		"order_id", id,
	)
	response.Success(c, address)
}

// UpdateOrderStatusRequest 注文状態の更新リクエスト
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateAdminOrderStatus 注文状態を更新
func (h *Handler) UpdateAdminOrderStatus(c *gin.Context) {
	id, ok := parseUintNullable(c.Param("id"))
	if !ok || id == 0 {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, nil)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, err)
		return
	}

	order, err := h.OrderService.UpdateStatus(id, strings.TrimSpace(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order_not_found", nil)
		case errors.Is(err, service.ErrInvalidOrderStatus):
			respondError(c, response.CodeBadRequest, "order_status_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "save_failed", err)
		}
		return
	}

	response.Success(c, order)
}
