package modules

import (
	"portal-berita-server/internal/db"
	"portal-berita-server/internal/modules/gallery"
	galleryrepo "portal-berita-server/internal/modules/gallery/repo"
	"portal-berita-server/internal/modules/post"
	postrepo "portal-berita-server/internal/modules/post/repo"
	"portal-berita-server/internal/modules/user"
	userrepo "portal-berita-server/internal/modules/user/repo"
	"portal-berita-server/internal/platform/cache"
	"portal-berita-server/internal/platform/imagehost"
)

type AppModules struct {
	User    *user.Module
	Post    *post.Module
	Gallery *gallery.Module
}

// New 按已打开的数据库组装各业务模块
func New(handles *db.Handles, cacheStore cache.Cache, host imagehost.Host) *AppModules {
	return &AppModules{
		User:    user.New(userrepo.NewUserStore(handles)),
		Post:    post.New(postrepo.NewPostStore(handles), cacheStore),
		Gallery: gallery.New(galleryrepo.NewGalleryStore(handles), host),
	}
}
