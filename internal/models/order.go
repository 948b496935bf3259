package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 印刷注文
type Order struct {
	ID                     uint           `gorm:"primarykey" json:"id"`                                               // 主キー
	OrderNo                string         `gorm:"uniqueIndex;not null" json:"order_no"`                               // 注文番号
	CustomerName           string         `gorm:"type:varchar(100);not null" json:"customer_name"`                    // 顧客名
	CustomerEmail          string         `gorm:"index;not null" json:"customer_email"`                               // 顧客メールアドレス
	Identity               string         `gorm:"type:varchar(64);index;not null" json:"-"`                           // 利用者識別子（ユーザーID または匿名キー）
	Status                 string         `gorm:"index;not null" json:"status"`                                       // 注文状態
	Currency               string         `gorm:"type:varchar(10);not null;default:'JPY'" json:"currency"`            // 通貨
	BlockCount             int            `gorm:"not null;default:0" json:"block_count"`                              // ブロック数
	SupportBlockCount      int            `gorm:"not null;default:0" json:"support_block_count"`                      // サポートブロック数
	VolumeCm3              float64        `gorm:"not null;default:0" json:"volume_cm3"`                               // 推定体積（cm³）
	ItemSubtotalYen        Money          `gorm:"type:decimal(20,0);not null;default:0" json:"item_subtotal_yen"`     // 商品小計
	ShippingYen            Money          `gorm:"type:decimal(20,0);not null;default:0" json:"shipping_yen"`          // 送料
	TotalBeforeDiscountYen Money          `gorm:"type:decimal(20,0);not null;default:0" json:"total_before_discount_yen"` // 割引前合計
	DiscountYen            Money          `gorm:"type:decimal(20,0);not null;default:0" json:"discount_yen"`          // 割引額
	TotalYen               Money          `gorm:"type:decimal(20,0);not null;default:0" json:"total_yen"`             // 請求合計
	TicketID               *uint          `gorm:"index" json:"ticket_id,omitempty"`                                   // チケットID
	BreakdownJSON          JSON           `gorm:"type:json" json:"breakdown"`                                         // 見積内訳（監査用スナップショット）
	ClientIP               string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`                        // 送信元IP
	CreatedAt              time.Time      `gorm:"index" json:"created_at"`                                            // 作成日時
	UpdatedAt              time.Time      `gorm:"index" json:"updated_at"`                                            // 更新日時
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`                                                     // 論理削除日時

	// 関連
	Shipping *OrderShipping `gorm:"foreignKey:OrderID" json:"shipping,omitempty"` // 配送先記録
}

// TableName テーブル名を指定
func (Order) TableName() string {
	return "orders"
}
