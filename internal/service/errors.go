package service

import "errors"

// 注文入力エラー
var (
	ErrNoBlocks              = errors.New("ブロックが 1 つもありません")
	ErrMissingCustomerFields = errors.New("顧客情報が不足しています")
	ErrInvalidPostalCode     = errors.New("郵便番号の形式が不正です")
	ErrInvalidBlockKey       = errors.New("ブロックキーの形式が不正です")
	ErrInvalidScaleSetting   = errors.New("スケール設定が不正です")
	ErrInvalidOrderStatus    = errors.New("注文状態が不正です")
	ErrModelNotReady         = errors.New("モデルが印刷可能な状態ではありません")
)

// チケット検証エラー（すべて invalid_ticket として顧客に返す）
var (
	ErrTicketInvalid      = errors.New("チケットコードが不正です")
	ErrTicketNotFound     = errors.New("チケットが見つかりません")
	ErrTicketTypeInvalid  = errors.New("チケット種別が不正です")
	ErrTicketInactive     = errors.New("チケットは無効化されています")
	ErrTicketExpired      = errors.New("チケットの有効期限が切れています")
	ErrTicketTotalLimit   = errors.New("チケットの総利用上限に達しています")
	ErrTicketPerUserLimit = errors.New("チケットの利用上限に達しています")
	ErrTicketUsageUnknown = errors.New("チケットの利用状況を確認できません")
)

// 永続化エラー
var (
	ErrOrderNotFound          = errors.New("注文が見つかりません")
	ErrOrderInsertFailed      = errors.New("注文の保存に失敗しました")
	ErrShippingEncryptFailed  = errors.New("配送先の暗号化に失敗しました")
	ErrShippingCryptoNotReady = errors.New("配送先暗号化キーが設定されていません")
)

// 管理設定エラー
var (
	ErrPricingConfigInvalid  = errors.New("価格設定の値が不正です")
	ErrShippingMatrixInvalid = errors.New("配送料金表の値が不正です")
	ErrTicketConfigInvalid   = errors.New("チケット設定の値が不正です")
)

// 認証エラー
var (
	ErrNotFound           = errors.New("対象が見つかりません")
	ErrInvalidCredentials = errors.New("ユーザー名またはパスワードが違います")
	ErrInvalidPassword    = errors.New("パスワードが違います")
	ErrWeakPassword       = errors.New("パスワードがポリシーを満たしていません")
)

// 画像認証エラー
var (
	ErrCaptchaRequired      = errors.New("画像認証が必要です")
	ErrCaptchaInvalid       = errors.New("画像認証に失敗しました")
	ErrCaptchaConfigInvalid = errors.New("画像認証の設定が不正です")
)

// メール送信エラー
var (
	ErrEmailServiceDisabled      = errors.New("メール送信は無効化されています")
	ErrEmailServiceNotConfigured = errors.New("SMTP が設定されていません")
	ErrInvalidEmail              = errors.New("メールアドレスが不正です")
	ErrEmailSendFailed           = errors.New("メールの送信に失敗しました")
)
