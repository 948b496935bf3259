package repository

import "time"

// OrderListFilter 注文一覧の絞り込み条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	Status      string
	OrderNo     string
	Email       string
	Zone        string
	TicketID    uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// TicketListFilter チケット一覧の絞り込み条件
type TicketListFilter struct {
	Page     int
	PageSize int
	Type     string
	Prefix   string
	IsActive *bool
}

// RedemptionListFilter チケット利用記録一覧の絞り込み条件
type RedemptionListFilter struct {
	Page     int
	PageSize int
	TicketID uint
	Identity string
}

// AuthzAuditLogListFilter 監査ログ一覧の絞り込み条件
type AuthzAuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorAdminID uint
	Action          string
	Object          string
	Method          string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
