package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"portal-berita-server/internal/config"
	"portal-berita-server/internal/consts"
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/di"
	"portal-berita-server/internal/modules/common/httpx"
	"portal-berita-server/internal/platform/cache"
	"portal-berita-server/internal/platform/imagehost"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadEnvFile 读取 .env（不存在时忽略）
func loadEnvFile() {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("⚠️ 读取 .env 失败: %v", err)
		}
		return
	}
	log.Println("✅ 已加载 .env 环境变量")
}

func runServer(configDir string) error {
	loadEnvFile()
	config.InitConfig(configDir)
	cfg := config.Get()

	ensureDirectories()

	ctx := context.Background()
	handles, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	cacheStore := cache.New(cfg.Redis)

	host, err := imagehost.New(cfg.ImageHost, cfg.Upload)
	if err != nil {
		_ = cacheStore.Close()
		_ = handles.Close(ctx)
		return fmt.Errorf("init image host: %w", err)
	}

	app, err := di.InitializeApplication(handles, cacheStore, host)
	if err != nil {
		_ = cacheStore.Close()
		_ = handles.Close(ctx)
		return fmt.Errorf("initialize application: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(newCORS(cfg.Server.CORSOrigins))
	applyTrustedProxies(r, cfg.Server.TrustedProxies)
	app.Router.Init(r)
	r.NoRoute(noRouteHandler)

	printWelcomeMessage()

	// 停机配置
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 服务启动成功，运行在 :%s\n", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ 服务启动失败: %s\n", err)
		}
	}()

	// 等待中断信号关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 正在关闭服务...")

	timeout := cfg.Server.ShutdownTimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ 服务强制关闭: %v", err)
	}
	if err := cacheStore.Close(); err != nil {
		log.Printf("⚠️ 关闭缓存失败: %v", err)
	}
	if err := handles.Close(shutdownCtx); err != nil {
		log.Printf("⚠️ 关闭数据库失败: %v", err)
	}
	log.Println("✅ 服务已退出")
	return nil
}

func newCORS(origins []string) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Cache"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:5173"}
	} else {
		corsConfig.AllowOrigins = origins
	}
	return cors.New(corsConfig)
}

func noRouteHandler(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api") {
		httpx.Error(c, http.StatusNotFound, "API not found")
		return
	}
	httpx.Error(c, http.StatusNotFound, "Not found")
}

// splitTrustedProxyList 支持逗号、分号与空白分隔
func splitTrustedProxyList(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\t' || r == '\r'
	})
}

func applyTrustedProxies(r *gin.Engine, raw string) {
	proxies := splitTrustedProxyList(raw)
	if len(proxies) == 0 {
		if err := r.SetTrustedProxies(nil); err != nil {
			log.Printf("⚠️ 重置可信代理失败: %v", err)
		}
		return
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		log.Printf("⚠️ 可信代理配置无效，已忽略: %v", err)
		_ = r.SetTrustedProxies(nil)
		return
	}
	log.Printf("🔒 可信代理: %v", proxies)
}

// ensureDirectories 创建本地图床目录与上传暂存目录
func ensureDirectories() {
	cfg := config.Get()

	uploadPath := cfg.Upload.Path
	checkSecurePath(uploadPath)
	if err := os.MkdirAll(uploadPath, 0755); err != nil {
		log.Fatal("无法创建上传目录: ", err)
	}

	if tempDir := cfg.Upload.TempDir; tempDir != "" {
		if err := os.MkdirAll(tempDir, 0755); err != nil {
			log.Fatal("无法创建暂存目录: ", err)
		}
	}
}

func printWelcomeMessage() {
	cfg := config.Get()
	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Printf(" │   🚀  %s\n", consts.ApplicationName)
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   📦  后端版本 : %s\n", consts.ApplicationVersion)
	fmt.Printf(" │   🗄️  数据库   : %s\n", cfg.Database.Type)
	fmt.Printf(" │   🖼️  图床     : %s\n", cfg.ImageHost.Provider)
	fmt.Printf(" │   🔥  服务端口 : %s\n", cfg.Server.Port)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}

func exportAPI(r *gin.Engine, output string) error {
	routes := r.Routes()

	// 简单的结构体，只留关键信息
	type RouteInfo struct {
		Method  string `json:"method"`
		Path    string `json:"path"`
		Handler string `json:"handler"`
	}

	exportList := make([]RouteInfo, 0, len(routes))
	for _, route := range routes {
		exportList = append(exportList, RouteInfo{
			Method:  route.Method,
			Path:    route.Path,
			Handler: route.Handler,
		})
	}

	file, err := json.MarshalIndent(exportList, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, file, 0644); err != nil {
		return err
	}

	log.Printf("✅ 路由已成功导出到 %s", output)
	return nil
}

func checkSecurePath(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		log.Fatalf("❌ 路径解析失败: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("❌ 无法获取当前工作目录: %v", err)
	}

	// 检查是否直接指向项目根目录
	if absPath == cwd {
		log.Fatalf("❌ 安全配置错误: 静态资源目录 '%s' 不能设置为项目根目录！这会导致源代码泄露。", path)
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err == nil && !strings.HasPrefix(rel, "..") {
		relSlash := filepath.ToSlash(rel)

		// 只有位于这些目录下的路径才被允许作为静态资源目录
		allowedDirs := []string{
			"uploads",
			"public",
			"static",
			"tmp",
		}

		isAllowed := false
		firstComponent := strings.Split(relSlash, "/")[0]
		for _, allowed := range allowedDirs {
			if strings.EqualFold(firstComponent, allowed) {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			log.Fatalf("❌ 安全配置错误: 静态资源目录 '%s' (解析为: '%s') 必须位于项目根目录下的安全子目录中 (如 %v)。", path, relSlash, allowedDirs)
		}
	}
}
