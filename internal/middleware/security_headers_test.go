package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// 测试内容：验证安全相关响应头会被正确设置。
func TestSecurityHeaders_SetsHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options 值为 %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options 值为 %q", got)
	}
	if got := w.Header().Get("Referrer-Policy"); got == "" {
		t.Fatalf("期望设置 Referrer-Policy")
	}
	if got := w.Header().Get("Content-Security-Policy"); got == "" {
		t.Fatalf("期望 CSP header to be set")
	}
}
