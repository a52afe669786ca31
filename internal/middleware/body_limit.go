package middleware

import (
	"fmt"
	"net/http"
	"portal-berita-server/internal/config"
	"portal-berita-server/internal/modules/common/httpx"
	"strings"

	"github.com/gin-gonic/gin"
)

// multipartOverheadBytes 表单字段与分隔符的额外空间
const multipartOverheadBytes = 1024 * 1024

// BodyLimitMiddleware 限制普通请求体大小，上传接口由 UploadBodyLimitMiddleware 负责
func BodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasSuffix(c.Request.URL.Path, "/upload") {
			c.Next()
			return
		}

		maxSizeMB := config.Get().Server.MaxBodySizeMB
		if maxSizeMB <= 0 {
			maxSizeMB = 2
		}
		maxBytes := int64(maxSizeMB) * 1024 * 1024

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// UploadBodyLimitMiddleware 限制上传请求体大小
func UploadBodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		maxSizeMB := config.Get().Upload.MaxSizeMB
		if maxSizeMB <= 0 {
			maxSizeMB = 10
		}
		maxBytes := int64(maxSizeMB)*1024*1024 + multipartOverheadBytes

		if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
			httpx.AbortWithError(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("文件大小不能超过 %dMB", maxSizeMB))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
