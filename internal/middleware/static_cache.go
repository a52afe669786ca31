package middleware

import (
	"portal-berita-server/internal/config"

	"github.com/gin-gonic/gin"
)

// StaticCacheMiddleware 为本地图床文件添加 Cache-Control 头，取值见 upload.cache_control
func StaticCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cc := config.Get().Upload.CacheControl; cc != "" {
			c.Header("Cache-Control", cc)
		}
		c.Next()
	}
}
