package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/http/response"
	"github.com/qbu-next/internal/models"
	"github.com/qbu-next/internal/repository"
	"github.com/qbu-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateTicketRequest チケット発行リクエスト
type CreateTicketRequest struct {
	Type           string     `json:"type" binding:"required"`
	Value          int64      `json:"value"`
	ApplyScope     string     `json:"apply_scope"`
	ShippingFree   bool       `json:"shipping_free"`
	ExpiresAt      *time.Time `json:"expires_at"`
	MaxTotalUses   *int       `json:"max_total_uses"`
	MaxUsesPerUser *int       `json:"max_uses_per_user"`
	IsActive       *bool      `json:"is_active"`
}

// UpdateTicketRequest チケット更新リクエスト
type UpdateTicketRequest struct {
	Value          *int64     `json:"value"`
	ApplyScope     *string    `json:"apply_scope"`
	ShippingFree   *bool      `json:"shipping_free"`
	ExpiresAt      *time.Time `json:"expires_at"`
	MaxTotalUses   *int       `json:"max_total_uses"`
	MaxUsesPerUser *int       `json:"max_uses_per_user"`
	IsActive       *bool      `json:"is_active"`
}

// CreateTicket チケットを発行
// 生コードはこのレスポンスでのみ返る。保存されるのはハッシュのみ。
func (h *Handler) CreateTicket(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, err)
		return
	}

	created, err := h.TicketAdminService.Create(service.CreateTicketInput{
		Type:           req.Type,
		Value:          models.NewMoneyFromYen(req.Value),
		ApplyScope:     req.ApplyScope,
		ShippingFree:   req.ShippingFree,
		ExpiresAt:      req.ExpiresAt,
		MaxTotalUses:   req.MaxTotalUses,
		MaxUsesPerUser: req.MaxUsesPerUser,
		IsActive:       req.IsActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrTicketConfigInvalid) {
			respondError(c, response.CodeBadRequest, "ticket_config_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "save_failed", err)
		return
	}

	h.enqueueConfigAudit(c, adminID, "ticket", created.Ticket.ID)
	response.Success(c, created)
}

// UpdateTicket チケット条件を更新
func (h *Handler) UpdateTicket(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, idOK := parseUintNullable(c.Param("id"))
	if !idOK || id == 0 {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, nil)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, err)
		return
	}

	input := service.UpdateTicketInput{
		ApplyScope:     req.ApplyScope,
		ShippingFree:   req.ShippingFree,
		ExpiresAt:      req.ExpiresAt,
		MaxTotalUses:   req.MaxTotalUses,
		MaxUsesPerUser: req.MaxUsesPerUser,
		IsActive:       req.IsActive,
	}
	if req.Value != nil {
		value := models.NewMoneyFromYen(*req.Value)
		input.Value = &value
	}

	ticket, err := h.TicketAdminService.Update(id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "ticket_not_found", nil)
		case errors.Is(err, service.ErrTicketConfigInvalid):
			respondError(c, response.CodeBadRequest, "ticket_config_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "save_failed", err)
		}
		return
	}

	h.enqueueConfigAudit(c, adminID, "ticket", ticket.ID)
	response.Success(c, ticket)
}

// DeleteTicket チケットを削除
func (h *Handler) DeleteTicket(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, idOK := parseUintNullable(c.Param("id"))
	if !idOK || id == 0 {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, nil)
		return
	}

	if err := h.TicketAdminService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "ticket_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "save_failed", err)
		return
	}

	h.enqueueConfigAudit(c, adminID, "ticket", id)
	response.Success(c, nil)
}

// GetTicket チケット詳細を取得
func (h *Handler) GetTicket(c *gin.Context) {
	id, ok := parseUintNullable(c.Param("id"))
	if !ok || id == 0 {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, nil)
		return
	}

	ticket, err := h.TicketAdminService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "ticket_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "config_fetch_failed", err)
		return
	}
	response.Success(c, ticket)
}

// ListTickets チケット一覧を取得
func (h *Handler) ListTickets(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var isActive *bool
	switch strings.TrimSpace(c.Query("is_active")) {
	case "true":
		v := true
		isActive = &v
	case "false":
		v := false
		isActive = &v
	}

	tickets, total, err := h.TicketAdminService.List(repository.TicketListFilter{
		Page:     page,
		PageSize: pageSize,
		Type:     strings.TrimSpace(c.Query("type")),
		Prefix:   strings.TrimSpace(c.Query("prefix")),
		IsActive: isActive,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "config_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, tickets, buildPagination(page, pageSize, total))
}

// ListTicketRedemptions チケット利用記録の一覧を取得
func (h *Handler) ListTicketRedemptions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	ticketID, ok := parseUintNullable(c.Query("ticket_id"))
	if !ok {
		respondError(c, response.CodeBadRequest, constants.ErrCodeBadRequest, nil)
		return
	}

	redemptions, total, err := h.TicketAdminService.ListRedemptions(repository.RedemptionListFilter{
		Page:     page,
		PageSize: pageSize,
		TicketID: ticketID,
		Identity: strings.TrimSpace(c.Query("identity")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "config_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, redemptions, buildPagination(page, pageSize, total))
}
