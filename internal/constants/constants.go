package constants

// 注文状態定数
const (
	OrderStatusReceived  = "received"
	OrderStatusInReview  = "in_review"
	OrderStatusPrinting  = "printing"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCanceled  = "canceled"
)

// チケット種別定数
const (
	TicketTypePercent      = "percent"
	TicketTypeFixed        = "fixed"
	TicketTypeFree         = "free"
	TicketTypeShippingFree = "shipping_free"
)

// 割引適用範囲定数
const (
	ApplyScopeSubtotal = "subtotal"
	ApplyScopeTotal    = "total"
)

// サイズ区分定数
const (
	SizeTier60  = "60"
	SizeTier80  = "80"
	SizeTier100 = "100"
	SizeTier120 = "120"
)

// スケール設定モード定数
const (
	ScaleModeMaxSide   = "maxSide"
	ScaleModeBlockEdge = "blockEdge"
)

// 注文エラーコード定数（顧客向けの安定した識別子）
const (
	ErrCodeBadRequest            = "bad_request"
	ErrCodeNoBlocks              = "no_blocks"
	ErrCodeMissingCustomerFields = "missing_customer_fields"
	ErrCodeInvalidPostalCode     = "invalid_postal_code"
	ErrCodeModelNotReady         = "model_not_ready"
	ErrCodeInvalidTicket         = "invalid_ticket"
	ErrCodeOrderInsertFailed     = "order_insert_failed"
	ErrCodeShippingEncryptFailed = "shipping_encrypt_failed"
	ErrCodeShippingCryptoMissing = "shipping_crypto_not_configured"
	ErrCodeSMTPNotConfigured     = "smtp_not_configured"
)

// 画像認証プロバイダ定数
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 画像認証の検証シーン定数
const (
	CaptchaSceneAdminLogin       = "admin_login"
	CaptchaSceneGuestCreateOrder = "guest_create_order"
)

// キュー定数
const (
	QueueDefault          = "default"
	TaskOrderInvoiceEmail = "order:invoice_email"
	TaskOrderAnalytics    = "order:analytics"
	TaskAdminConfigAudit  = "admin:config_audit"
)

// キャッシュ既定値定数
const (
	RedisPrefixDefault = "qbu"
)

// 設定キー定数
const (
	SettingKeySiteConfig    = "site_config"
	SettingKeyOrderConfig   = "order_config"
	SettingKeySMTPConfig    = "smtp_config"
	SettingKeyCaptchaConfig = "captcha_config"
	SettingFieldPaddingMm   = "padding_mm"
	SettingFieldOrderPrefix = "order_no_prefix"
)

// 通貨定数
const (
	SiteCurrencyDefault = "JPY"
)

// 注文番号の既定プレフィックス
const (
	OrderNoPrefixDefault = "QB"
)
