package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// 测试内容：验证上传请求体超过上限时直接返回 413。
func TestUploadBodyLimitMiddleware_RejectsTooLarge(t *testing.T) {
	r := gin.New()
	r.POST("/upload", UploadBodyLimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	// 默认上限 10MB，另有 1MB 表单余量
	payload := bytes.Repeat([]byte("a"), 12*1024*1024)
	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(payload))
	req.ContentLength = int64(len(payload))

	if w := serve(r, req); w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("期望 413，实际为 %d", w.Code)
	}
}

// 测试内容：验证普通接口读取超过上限的请求体会失败，上传路径不受该限制。
func TestBodyLimitMiddleware_LimitsNonUploadRoutes(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimitMiddleware())
	handler := func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	}
	r.POST("/api/posts", handler)
	r.POST("/api/gallery/upload", handler)

	payload := bytes.Repeat([]byte("a"), 3*1024*1024)
	if w := serve(r, httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(payload))); w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("期望普通接口 413，实际为 %d", w.Code)
	}
	if w := serve(r, httptest.NewRequest(http.MethodPost, "/api/gallery/upload", bytes.NewReader(payload))); w.Code != http.StatusOK {
		t.Fatalf("期望上传路径跳过普通限制，实际为 %d", w.Code)
	}
}
