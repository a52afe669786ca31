package middleware

import (
	"net/http"
	"portal-berita-server/internal/consts"
	"portal-berita-server/internal/modules/common/httpx"
	"portal-berita-server/internal/utils"
	"strings"

	"github.com/gin-gonic/gin"
)

// tokenFromRequest 优先读取 Authorization: Bearer，其次读取登录 Cookie
func tokenFromRequest(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return "", false
		}
		return strings.TrimSpace(parts[1]), true
	}
	if cookie, err := c.Cookie(consts.AccessTokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := tokenFromRequest(c)
		if !ok {
			httpx.AbortWithError(c, http.StatusUnauthorized, "需要登录后才能访问")
			return
		}

		claims, err := utils.ParseLoginToken(token)
		if err != nil {
			httpx.AbortWithError(c, http.StatusUnauthorized, "Token 无效或已过期")
			return
		}

		c.Set(consts.ContextUserID, claims.ID)
		c.Set(consts.ContextRole, claims.Role)
		c.Next()
	}
}
