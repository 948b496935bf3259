package models

import (
	"time"

	"gorm.io/gorm"
)

// PricingConfig 価格設定（追記専用・有効な行は常に 1 件）
type PricingConfig struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                  // 主キー
	BaseFeeYen      Money          `gorm:"type:decimal(20,0);not null;default:0" json:"base_fee_yen"`      // 基本料金
	PerCm3Yen       Money          `gorm:"type:decimal(20,0);not null;default:0" json:"per_cm3_yen"`       // 体積単価（円/cm³）
	MinFeeYen       Money          `gorm:"type:decimal(20,0);not null;default:0" json:"min_fee_yen"`       // 最低料金
	RoundingStepYen Money          `gorm:"type:decimal(20,0);not null;default:10" json:"rounding_step_yen"` // 丸め単位
	Currency        string         `gorm:"type:varchar(10);not null;default:'JPY'" json:"currency"`        // 通貨
	EffectiveFrom   *time.Time     `gorm:"index" json:"effective_from"`                           // 適用開始日時
	IsActive        bool           `gorm:"not null;default:false;index" json:"is_active"`         // 有効フラグ
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                               // 作成日時
	UpdatedAt       time.Time      `json:"updated_at"`                                            // 更新日時
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                        // 論理削除日時
}

// TableName テーブル名を指定
func (PricingConfig) TableName() string {
	return "pricing_configs"
}
