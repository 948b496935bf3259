package models

import "time"

// OrderShipping 注文配送先（住所本文は暗号化して保存）
type OrderShipping struct {
	ID                uint      `gorm:"primarykey" json:"id"`                               // 主キー
	OrderID           uint      `gorm:"uniqueIndex;not null" json:"order_id"`               // 注文ID
	PostalCode        string    `gorm:"type:varchar(8)" json:"postal_code"`                 // 郵便番号
	Prefecture        string    `gorm:"type:varchar(20);not null" json:"prefecture"`        // 都道府県
	Zone              string    `gorm:"type:varchar(20);index;not null" json:"zone"`        // 配送地域
	SizeTier          string    `gorm:"type:varchar(10);not null" json:"size_tier"`         // サイズ区分
	AddressCiphertext []byte    `gorm:"type:blob" json:"-"`                                 // 住所暗号文
	AddressNonce      []byte    `gorm:"type:blob" json:"-"`                                 // ナンス
	CreatedAt         time.Time `gorm:"index" json:"created_at"`                            // 作成日時
}

// TableName テーブル名を指定
func (OrderShipping) TableName() string {
	return "order_shippings"
}
