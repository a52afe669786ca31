package router

import (
	"portal-berita-server/internal/config"
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/middleware"
	"portal-berita-server/internal/modules"
	"strings"

	"github.com/gin-gonic/gin"
)

type Router struct {
	modules *modules.AppModules
	handles *db.Handles
}

func NewRouter(appModules *modules.AppModules, handles *db.Handles) *Router {
	return &Router{
		modules: appModules,
		handles: handles,
	}
}

func (rt *Router) Init(r *gin.Engine) {
	// 注册全局安全标头中间件
	r.Use(middleware.SecurityHeaders())

	registerHealthRoutes(r, rt.handles)
	registerStaticRoutes(r)

	api := r.Group("/api")
	// 应用请求体大小限制中间件
	api.Use(middleware.BodyLimitMiddleware())

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong from gin"})
	})

	registerUserRoutes(api, rt.modules.User.Handler)
	registerPostRoutes(api, rt.modules.Post.Handler)
	registerGalleryRoutes(api, rt.modules.Gallery.Handler)
}

// registerStaticRoutes 本地图床时对外提供已上传的文件
func registerStaticRoutes(r *gin.Engine) {
	cfg := config.Get()
	provider := strings.ToLower(strings.TrimSpace(cfg.ImageHost.Provider))
	if provider != "" && provider != "local" {
		return
	}

	prefix := strings.TrimSuffix(cfg.Upload.URLPrefix, "/")
	if prefix == "" {
		prefix = "/imgs"
	}
	imgs := r.Group(prefix)
	imgs.Use(middleware.StaticCacheMiddleware())
	imgs.Static("/", cfg.Upload.Path)
}
