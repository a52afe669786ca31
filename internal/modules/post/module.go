package post

import (
	"portal-berita-server/internal/modules/post/handler"
	"portal-berita-server/internal/modules/post/repo"
	"portal-berita-server/internal/modules/post/service"
	"portal-berita-server/internal/platform/cache"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(postStore repo.PostStore, cacheStore cache.Cache) *Module {
	moduleService := service.New(postStore, cacheStore)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
