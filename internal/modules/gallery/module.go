package gallery

import (
	"portal-berita-server/internal/modules/gallery/handler"
	"portal-berita-server/internal/modules/gallery/repo"
	"portal-berita-server/internal/modules/gallery/service"
	"portal-berita-server/internal/platform/imagehost"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(galleryStore repo.GalleryStore, host imagehost.Host) *Module {
	moduleService := service.New(galleryStore, host)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
