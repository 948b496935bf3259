package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin 管理者
type Admin struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                         // 主キー
	Username           string         `gorm:"uniqueIndex;not null" json:"username"`         // 管理者アカウント
	PasswordHash       string         `gorm:"not null" json:"-"`                            // パスワードハッシュ
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                  // トークンバージョン（全失効用）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                               // この時刻より前のトークンを無効化
	IsSuper            bool           `gorm:"not null;default:false;index" json:"is_super"` // スーパー管理者フラグ
	LastLoginAt        *time.Time     `json:"last_login_at"`                                // 最終ログイン日時
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                      // 作成日時
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                               // 論理削除日時
}

// TableName テーブル名を指定
func (Admin) TableName() string {
	return "admins"
}
