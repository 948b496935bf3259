package service

import (
	"time"

	"github.com/qbu-next/internal/logger"
	"github.com/qbu-next/internal/models"
	"github.com/qbu-next/internal/queue"
)

// enqueueOrderFollowups 注文確定後の後続タスクを投入する
// 失敗してもログに残すのみで注文自体は成立させる。
func (s *OrderService) enqueueOrderFollowups(order *models.Order) {
	if s.queueClient == nil || !s.queueClient.Enabled() || order == nil {
		return
	}

	if err := s.queueClient.EnqueueOrderInvoiceEmail(queue.OrderInvoiceEmailPayload{OrderID: order.ID}); err != nil {
		logger.Warnw("order_invoice_email_enqueue_failed",
			"order_id", order.ID,
			"error", err,
		)
	}

	if err := s.queueClient.EnqueueOrderAnalytics(queue.OrderAnalyticsPayload{OrderID: order.ID}); err != nil {
		logger.Warnw("order_analytics_enqueue_failed",
			"order_id", order.ID,
			"error", err,
		)
	}
}

func nowOrderStamp() string {
	return time.Now().Format("20060102150405")
}
