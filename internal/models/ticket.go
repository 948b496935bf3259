package models

import (
	"time"

	"gorm.io/gorm"
)

// Ticket 割引チケット
// 生のコードは保存しない。ソルト付きハッシュと表示用プレフィックスのみ持つ。
type Ticket struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                   // 主キー
	CodeHash       string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`         // コードのソルト付きハッシュ
	CodePrefix     string         `gorm:"type:varchar(12);not null" json:"code_prefix"`           // 表示用プレフィックス（非秘匿）
	Type           string         `gorm:"type:varchar(20);not null" json:"type"`                  // 種別（percent/fixed/free/shipping_free）
	Value          Money          `gorm:"type:decimal(20,0);not null;default:0" json:"value"`     // 値（percent: 0-100, fixed: 円）
	ApplyScope     string         `gorm:"type:varchar(20);not null;default:'subtotal'" json:"apply_scope"` // 適用範囲（subtotal/total）
	ShippingFree   bool           `gorm:"not null;default:false" json:"shipping_free"`            // 送料無料フラグ
	IsActive       bool           `gorm:"not null;default:true;index" json:"is_active"`           // 有効フラグ
	ExpiresAt      *time.Time     `gorm:"index" json:"expires_at"`                                // 失効日時
	MaxTotalUses   *int           `json:"max_total_uses"`                                        // 総利用上限（null は無制限）
	MaxUsesPerUser *int           `json:"max_uses_per_user"`                                     // 1 人あたり利用上限（null は無制限）
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                // 作成日時
	UpdatedAt      time.Time      `json:"updated_at"`                                             // 更新日時
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                         // 論理削除日時
}

// TableName テーブル名を指定
func (Ticket) TableName() string {
	return "tickets"
}
