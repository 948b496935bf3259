package public

import (
	"strings"

	handlershared "github.com/qbu-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	guestIdentityCookie = "qbu_guest_id"
	guestCookieMaxAge   = 365 * 24 * 60 * 60
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// resolveGuestIdentity 匿名顧客の識別子を解決する
// 初回アクセス時に UUID を払い出して Cookie に保存し、以後の注文回数制限に使う。
func resolveGuestIdentity(c *gin.Context) string {
	if value, err := c.Cookie(guestIdentityCookie); err == nil {
		trimmed := strings.TrimSpace(value)
		if _, parseErr := uuid.Parse(trimmed); parseErr == nil {
			return trimmed
		}
	}
	identity := uuid.NewString()
	c.SetCookie(guestIdentityCookie, identity, guestCookieMaxAge, "/", "", false, true)
	return identity
}
