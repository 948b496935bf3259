package models

import "time"

// TicketRedemption チケット利用記録（追記専用）
// 利用上限の判定はこの記録の件数のみを根拠とする。チケット側に可変カウンタは持たない。
type TicketRedemption struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                    // 主キー
	TicketID    uint      `gorm:"index;not null" json:"ticket_id"`                         // チケットID
	OrderID     uint      `gorm:"index;not null" json:"order_id"`                          // 注文ID
	Identity    string    `gorm:"type:varchar(64);index;not null" json:"identity"`         // 利用者識別子（ユーザーID または匿名キー）
	DiscountYen Money     `gorm:"type:decimal(20,0);not null;default:0" json:"discount_yen"` // 割引額
	Snapshot    JSON      `gorm:"type:json" json:"snapshot"`                               // 適用時のチケット内容
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                 // 作成日時
}

// TableName テーブル名を指定
func (TicketRedemption) TableName() string {
	return "ticket_redemptions"
}
