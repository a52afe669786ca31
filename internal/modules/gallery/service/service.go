package service

import (
	"portal-berita-server/internal/config"
	"portal-berita-server/internal/modules/gallery/repo"
	"portal-berita-server/internal/platform/imagehost"
	"time"
)

const (
	MaxTitleLength = 200
	MaxTags        = 20
	MaxTagLength   = 50
)

type Service struct {
	galleryStore repo.GalleryStore
	host         imagehost.Host
}

func New(galleryStore repo.GalleryStore, host imagehost.Host) *Service {
	return &Service{galleryStore: galleryStore, host: host}
}

// hostTimeout 远程图床单次调用的超时
func hostTimeout() time.Duration {
	seconds := config.Get().ImageHost.TimeoutSeconds
	if seconds <= 0 {
		seconds = 30
	}
	return time.Duration(seconds) * time.Second
}
