package admin

import "github.com/qbu-next/internal/provider"

// Handler 管理 API ハンドラ
// 価格・配送・チケット設定と注文管理など、管理者向けエンドポイントを担当する。
type Handler struct {
	*provider.Container
}

// New 管理ハンドラを作成
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
