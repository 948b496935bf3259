package public

import "github.com/qbu-next/internal/provider"

// Handler 公開 API ハンドラ
// 注文の見積・確定・照会など、認証不要の顧客向けエンドポイントを担当する。
type Handler struct {
	*provider.Container
}

// New 公開ハンドラを作成
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
