package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portal-berita-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

func newContext(method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v body=%s", err, w.Body.String())
	}
	return resp
}

// 测试内容：验证业务错误码映射为对应 HTTP 状态码并写出错误信封。
func TestWriteServiceError_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.NewValidationError("bad", "title: required"), http.StatusBadRequest},
		{service.NewUnauthorizedError("no"), http.StatusUnauthorized},
		{service.NewForbiddenError("no"), http.StatusForbidden},
		{service.NewNotFoundError("none"), http.StatusNotFound},
		{service.NewConflictError("dup"), http.StatusConflict},
		{service.NewTooLargeError("big"), http.StatusRequestEntityTooLarge},
		{service.NewUpstreamError("host", errors.New("timeout")), http.StatusBadGateway},
		{service.NewInternalError("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		c, w := newContext(http.MethodGet, "")
		WriteServiceError(c, tc.err, "fallback")
		if w.Code != tc.want {
			t.Fatalf("%v: 期望 %d，实际为 %d", tc.err, tc.want, w.Code)
		}
		resp := decodeError(t, w)
		if resp.Success || resp.Data != nil || resp.Status != tc.want || resp.Errors == nil {
			t.Fatalf("非预期错误信封: %+v", resp)
		}
	}
}

// 测试内容：验证未知错误返回通用 500 信息而不泄露细节。
func TestWriteServiceError_UnknownError(t *testing.T) {
	c, w := newContext(http.MethodGet, "")
	WriteServiceError(c, errors.New("dial tcp: secret host"), "服务器内部错误")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("期望 500，实际为 %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "secret host") {
		t.Fatalf("响应泄露了内部错误: %s", w.Body.String())
	}
}

// 测试内容：验证成功信封结构。
func TestSuccess_Envelope(t *testing.T) {
	c, w := newContext(http.MethodGet, "")
	Success(c, http.StatusCreated, gin.H{"k": "v"}, "ok")

	var resp SuccessResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if w.Code != http.StatusCreated || !resp.Success || resp.Status != http.StatusCreated || resp.Message != "ok" {
		t.Fatalf("非预期成功信封: %s", w.Body.String())
	}
}

type strictBody struct {
	Title string `json:"title" binding:"required"`
}

// 测试内容：验证严格绑定拒绝未知字段、空请求体与缺失必填字段。
func TestBindJSONStrict(t *testing.T) {
	var ok strictBody
	c, _ := newContext(http.MethodPost, `{"title":"Bali"}`)
	if err := BindJSONStrict(c, &ok); err != nil || ok.Title != "Bali" {
		t.Fatalf("期望绑定成功，实际为 %v", err)
	}

	for _, body := range []string{`{"title":"x","extra":1}`, ``, `{}`, `{"title":"x"} {}`} {
		var dst strictBody
		c, _ := newContext(http.MethodPost, body)
		err := BindJSONStrict(c, &dst)
		if !service.IsCode(err, service.ErrorCodeValidation) {
			t.Fatalf("body=%q 期望 validation 错误，实际为 %v", body, err)
		}
	}
}

// 测试内容：验证请求体超过 MaxBytesReader 限制时返回 413 而不是 400。
func TestBindJSONStrict_BodyTooLarge(t *testing.T) {
	c, w := newContext(http.MethodPost, `{"title":"`+strings.Repeat("a", 256)+`"}`)
	c.Request.Body = http.MaxBytesReader(w, c.Request.Body, 64)

	var dst strictBody
	err := BindJSONStrict(c, &dst)
	if !service.IsCode(err, service.ErrorCodeTooLarge) {
		t.Fatalf("期望 too_large 错误，实际为 %v", err)
	}

	WriteServiceError(c, err, "fallback")
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("期望 413，实际为 %d", w.Code)
	}
}
