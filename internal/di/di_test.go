package di

import (
	"os"
	"testing"

	"portal-berita-server/internal/db"
	"portal-berita-server/internal/platform/cache"
	"portal-berita-server/internal/platform/imagehost/imagehosttest"
	"portal-berita-server/internal/testutils"
)

func TestMain(m *testing.M) {
	cleanup := testutils.InitTestConfig("portal-berita-di-*")
	code := m.Run()
	cleanup()
	os.Exit(code)
}

// 测试内容：验证依赖注入组装出完整的模块与路由。
func TestInitializeApplication(t *testing.T) {
	handles := db.NewSQLHandles(testutils.SetupDB(t))
	app, err := InitializeApplication(handles, cache.NewMemoryCache(), &imagehosttest.FakeHost{})
	if err != nil {
		t.Fatalf("InitializeApplication: %v", err)
	}
	if app.Router == nil || app.Modules == nil {
		t.Fatalf("期望 Router 与 Modules 均已初始化")
	}
	if app.Modules.User == nil || app.Modules.Post == nil || app.Modules.Gallery == nil {
		t.Fatalf("期望所有业务模块均已初始化: %+v", app.Modules)
	}
}
