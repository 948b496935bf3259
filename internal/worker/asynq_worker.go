package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/qbu-next/internal/logger"
	"github.com/qbu-next/internal/models"
	"github.com/qbu-next/internal/provider"
	"github.com/qbu-next/internal/queue"
	"github.com/qbu-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 非同期タスク消費者
type Consumer struct {
	*provider.Container
}

// NewConsumer 消費者を作成
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register ハンドラを登録
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderInvoiceEmail, c.handleOrderInvoiceEmail)
	mux.HandleFunc(queue.TaskOrderAnalytics, c.handleOrderAnalytics)
	mux.HandleFunc(queue.TaskAdminConfigAudit, c.handleAdminConfigAudit)
}

func (c *Consumer) handleOrderInvoiceEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_invoice_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderInvoiceEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_invoice_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_invoice_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_invoice_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_invoice_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	receiverEmail, err := c.OrderRepo.ResolveReceiverEmailByOrderID(order.ID)
	if err != nil {
		logger.Warnw("worker_order_invoice_email_resolve_receiver_failed", "order_id", order.ID, "error", err)
		return err
	}
	if receiverEmail == "" {
		logger.Debugw("worker_order_invoice_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_invoice_email_skip_email_service_nil", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	input := buildOrderInvoiceEmailInput(order)
	if err := c.EmailService.SendOrderInvoiceEmail(receiverEmail, input); err != nil {
		logger.Warnw("worker_order_invoice_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiverEmail,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderAnalytics(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_analytics_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderAnalyticsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_analytics_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_analytics_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_analytics_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_analytics_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	// 注文実績の集計レコード。外部の集計基盤がログを収集する前提。
	zone := ""
	sizeTier := ""
	if order.Shipping != nil {
		zone = order.Shipping.Zone
		sizeTier = order.Shipping.SizeTier
	}
	logger.Infow("order_analytics",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"block_count", order.BlockCount,
		"support_block_count", order.SupportBlockCount,
		"volume_cm3", order.VolumeCm3,
		"item_subtotal_yen", order.ItemSubtotalYen.Yen(),
		"shipping_yen", order.ShippingYen.Yen(),
		"discount_yen", order.DiscountYen.Yen(),
		"total_yen", order.TotalYen.Yen(),
		"zone", zone,
		"size_tier", sizeTier,
		"ticket_applied", order.TicketID != nil,
	)
	return nil
}

func (c *Consumer) handleAdminConfigAudit(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_admin_config_audit_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.AdminConfigAuditPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_admin_config_audit_unmarshal_failed", "error", err)
		return err
	}
	if payload.AdminID == 0 || strings.TrimSpace(payload.ConfigKind) == "" {
		logger.Debugw("worker_admin_config_audit_skip_invalid_payload",
			"admin_id", payload.AdminID,
			"config_kind", payload.ConfigKind,
		)
		return nil
	}
	if c.AuthzAuditService == nil {
		logger.Warnw("worker_admin_config_audit_skip_audit_service_nil", "admin_id", payload.AdminID)
		return nil
	}
	err := c.AuthzAuditService.Record(service.AuthzAuditRecordInput{
		OperatorAdminID:  payload.AdminID,
		OperatorUsername: payload.Username,
		Action:           "config:activate",
		Object:           payload.ConfigKind,
		Detail: models.JSON{
			"config_kind": payload.ConfigKind,
			"config_id":   payload.ConfigID,
		},
	})
	if err != nil {
		logger.Warnw("worker_admin_config_audit_record_failed",
			"admin_id", payload.AdminID,
			"config_kind", payload.ConfigKind,
			"config_id", payload.ConfigID,
			"error", err,
		)
		return err
	}
	return nil
}

// buildOrderInvoiceEmailInput 注文レコードから請求書メール入力を組み立てる
func buildOrderInvoiceEmailInput(order *models.Order) service.OrderInvoiceEmailInput {
	if order == nil {
		return service.OrderInvoiceEmailInput{}
	}
	sizeTier := ""
	if order.Shipping != nil {
		sizeTier = order.Shipping.SizeTier
	}
	return service.OrderInvoiceEmailInput{
		OrderNo:           order.OrderNo,
		CustomerName:      order.CustomerName,
		BlockCount:        order.BlockCount,
		SupportBlockCount: order.SupportBlockCount,
		VolumeCm3:         order.VolumeCm3,
		ItemSubtotal:      order.ItemSubtotalYen,
		Shipping:          order.ShippingYen,
		Discount:          order.DiscountYen,
		Total:             order.TotalYen,
		Currency:          order.Currency,
		SizeTier:          sizeTier,
		TicketApplied:     order.TicketID != nil,
	}
}
