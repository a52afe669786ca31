package service

import (
	"context"
	"portal-berita-server/internal/config"
	"portal-berita-server/internal/modules/post/repo"
	"portal-berita-server/internal/platform/cache"
	"time"
)

const (
	DefaultPageLimit     = 10
	DefaultFeaturedLimit = 5
	MaxPageLimit         = 100
)

type Service struct {
	postStore repo.PostStore
	cache     cache.Cache
}

func New(postStore repo.PostStore, cacheStore cache.Cache) *Service {
	return &Service{postStore: postStore, cache: cacheStore}
}

func cacheTTL() time.Duration {
	seconds := config.Get().Cache.TTLSeconds
	if seconds <= 0 {
		seconds = 3600
	}
	return time.Duration(seconds) * time.Second
}

func invalidateRetries() int {
	retries := config.Get().Cache.InvalidateRetries
	if retries <= 0 {
		retries = 3
	}
	return retries
}

// cacheContext 缓存操作使用短超时，且不随请求取消
func cacheContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
}
