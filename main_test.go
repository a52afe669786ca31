package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"portal-berita-server/internal/config"
	"portal-berita-server/internal/consts"
	userdto "portal-berita-server/internal/modules/user/dto"
	userrepo "portal-berita-server/internal/modules/user/repo"
	"portal-berita-server/internal/testutils"

	"github.com/gin-gonic/gin"
)

// 测试内容：为 main 包测试初始化配置环境并在结束时清理。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	cleanup := testutils.InitTestConfig("portal-berita-main-*")
	code := m.Run()
	cleanup()
	os.Exit(code)
}

// 测试内容：验证 splitTrustedProxyList 能正确拆分代理列表。
func TestSplitTrustedProxyList(t *testing.T) {
	got := splitTrustedProxyList(" 1.1.1.1,2.2.2.2; 3.3.3.3 \n4.4.4.4\t")
	if len(got) != 4 {
		t.Fatalf("期望 4 parts，实际为 %v", got)
	}
	if got := splitTrustedProxyList("  "); len(got) != 0 {
		t.Fatalf("期望空列表，实际为 %v", got)
	}
}

// 测试内容：验证可信代理配置决定 ClientIP 是否读取 X-Forwarded-For。
func TestApplyTrustedProxies(t *testing.T) {
	newEngine := func(raw string) *gin.Engine {
		r := gin.New()
		applyTrustedProxies(r, raw)
		r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) })
		return r
	}
	request := func(r *gin.Engine) string {
		req := httptest.NewRequest(http.MethodGet, "/ip", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", "203.0.113.9")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Body.String()
	}

	if got := request(newEngine("")); got != "10.0.0.1" {
		t.Fatalf("未配置代理时期望使用直连地址，实际为 %s", got)
	}
	if got := request(newEngine("10.0.0.1")); got != "203.0.113.9" {
		t.Fatalf("可信代理时期望使用转发地址，实际为 %s", got)
	}
	if got := request(newEngine("not-an-ip")); got != "10.0.0.1" {
		t.Fatalf("非法配置应回退为不信任代理，实际为 %s", got)
	}
}

// 测试内容：验证 routes 导出写出包含核心接口的 JSON。
func TestExportAPI_WritesRoutesJSON(t *testing.T) {
	r, cleanup, err := buildOfflineEngine()
	if err != nil {
		t.Fatalf("buildOfflineEngine: %v", err)
	}
	defer cleanup()

	output := filepath.Join(t.TempDir(), "routes.json")
	if err := exportAPI(r, output); err != nil {
		t.Fatalf("exportAPI: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("读取导出文件失败: %v", err)
	}
	var routes []map[string]string
	if err := json.Unmarshal(data, &routes); err != nil {
		t.Fatalf("导出内容不是合法 JSON: %v", err)
	}
	found := false
	for _, route := range routes {
		if route["method"] == "POST" && route["path"] == "/api/gallery/upload" {
			found = true
		}
	}
	if !found {
		t.Fatalf("期望导出包含上传接口: %s", data)
	}
}

// 测试内容：验证未知路由返回统一的错误信封。
func TestNoRouteHandler(t *testing.T) {
	r := gin.New()
	r.NoRoute(noRouteHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"success":false`) {
		t.Fatalf("非预期响应: %d %s", w.Code, w.Body.String())
	}
}

// 测试内容：验证 CORS 允许配置的来源并暴露 X-Cache。
func TestNewCORS(t *testing.T) {
	r := gin.New()
	r.Use(newCORS([]string{"https://berita.example"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://berita.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://berita.example" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Expose-Headers"); !strings.Contains(got, "X-Cache") {
		t.Fatalf("期望暴露 X-Cache，实际为 %q", got)
	}
}

// 测试内容：验证 ensureDirectories 创建上传目录与暂存目录。
func TestEnsureDirectories(t *testing.T) {
	ensureDirectories()
	cfg := config.Get()
	for _, dir := range []string{cfg.Upload.Path, cfg.Upload.TempDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("期望目录 %s 已创建: %v", dir, err)
		}
	}
}

// 测试内容：验证命令行创建管理员得到 admin 角色，重复创建返回错误。
func TestCreateAdmin(t *testing.T) {
	store := userrepo.NewUserRepository(testutils.SetupDB(t))
	req := userdto.CreateAdminRequest{UserName: "redaktur", Email: "redaktur@berita.id", Password: "rahasia123"}

	user, err := createAdmin(context.Background(), store, req)
	if err != nil {
		t.Fatalf("createAdmin: %v", err)
	}
	if user.Role != consts.RoleAdmin || user.FullName != "redaktur" {
		t.Fatalf("非预期管理员: %+v", user)
	}
	if _, err := createAdmin(context.Background(), store, req); err == nil {
		t.Fatalf("期望重复创建失败")
	}
}

// 测试内容：验证根命令注册了 serve、routes 与 admin 子命令。
func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "routes", "admin"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Fatalf("缺少子命令 %s: %v", name, err)
		}
	}
}
