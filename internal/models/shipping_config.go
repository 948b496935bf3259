package models

import (
	"time"

	"gorm.io/gorm"
)

// ShippingConfig 配送料金設定（追記専用・有効な行は常に 1 件）
type ShippingConfig struct {
	ID            uint           `gorm:"primarykey" json:"id"`                          // 主キー
	Name          string         `gorm:"type:varchar(100);not null" json:"name"`        // 設定名
	EffectiveFrom *time.Time     `gorm:"index" json:"effective_from"`                   // 適用開始日時
	IsActive      bool           `gorm:"not null;default:false;index" json:"is_active"` // 有効フラグ
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                       // 作成日時
	UpdatedAt     time.Time      `json:"updated_at"`                                    // 更新日時
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                // 論理削除日時

	// 関連
	Rates []ShippingRate `gorm:"foreignKey:ConfigID" json:"rates,omitempty"` // 料金行（9 地域 × 4 サイズ）
}

// TableName テーブル名を指定
func (ShippingConfig) TableName() string {
	return "shipping_configs"
}

// ShippingRate 配送料金行（地域 × サイズ区分ごとの料金）
type ShippingRate struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                      // 主キー
	ConfigID  uint      `gorm:"index;not null" json:"config_id"`                           // 配送設定ID
	Zone      string    `gorm:"type:varchar(20);index;not null" json:"zone"`               // 配送地域
	SizeTier  string    `gorm:"type:varchar(10);index;not null" json:"size_tier"`          // サイズ区分
	PriceYen  Money     `gorm:"type:decimal(20,0);not null;default:0" json:"price_yen"`    // 料金
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                   // 作成日時
}

// TableName テーブル名を指定
func (ShippingRate) TableName() string {
	return "shipping_rates"
}
