package queue

import (
	"encoding/json"

	"github.com/qbu-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderInvoiceEmail 注文確認メール送信タスク
	TaskOrderInvoiceEmail = constants.TaskOrderInvoiceEmail
	// TaskOrderAnalytics 注文集計タスク
	TaskOrderAnalytics = constants.TaskOrderAnalytics
	// TaskAdminConfigAudit 設定変更監査タスク
	TaskAdminConfigAudit = constants.TaskAdminConfigAudit
)

// OrderInvoiceEmailPayload 注文確認メールタスクの載荷
type OrderInvoiceEmailPayload struct {
	OrderID uint `json:"order_id"`
}

// OrderAnalyticsPayload 注文集計タスクの載荷
type OrderAnalyticsPayload struct {
	OrderID uint `json:"order_id"`
}

// AdminConfigAuditPayload 設定変更監査タスクの載荷
type AdminConfigAuditPayload struct {
	AdminID    uint   `json:"admin_id"`
	Username   string `json:"username"`
	ConfigKind string `json:"config_kind"`
	ConfigID   uint   `json:"config_id"`
}

// NewOrderInvoiceEmailTask 注文確認メールタスクを作成
func NewOrderInvoiceEmailTask(payload OrderInvoiceEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderInvoiceEmail, body), nil
}

// NewOrderAnalyticsTask 注文集計タスクを作成
func NewOrderAnalyticsTask(payload OrderAnalyticsPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderAnalytics, body), nil
}

// NewAdminConfigAuditTask 設定変更監査タスクを作成
func NewAdminConfigAuditTask(payload AdminConfigAuditPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAdminConfigAudit, body), nil
}
