package cache

import (
	"context"
	"fmt"
	"log"
	"portal-berita-server/internal/config"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 以 key 为单位失效的分字段缓存。
// 一个 key 对应一类派生结果（如某种文章列表），field 区分分页参数。
type Cache interface {
	GetField(ctx context.Context, key, field string) ([]byte, bool, error)
	SetField(ctx context.Context, key, field string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// New 创建缓存；Redis 未启用或不可用时降级为进程内缓存。
func New(cfg config.RedisConfig) Cache {
	if !cfg.Enabled {
		log.Println("ℹ️ Redis 未启用，使用内存缓存")
		return NewMemoryCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Printf("⚠️ Redis 不可用，降级为内存模式: %v", err)
		return NewMemoryCache()
	}

	log.Printf("✅ Redis 已连接: %s (db=%d)", cfg.Addr, cfg.DB)
	return NewRedisCache(client, cfg.Prefix)
}

// Invalidate 删除缓存键，失败时按递增间隔重试，全部失败后返回最后一次错误。
func Invalidate(ctx context.Context, c Cache, retries int, keys ...string) error {
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		opCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		lastErr = c.Delete(opCtx, keys...)
		cancel()
		if lastErr == nil {
			return nil
		}

		if attempt < retries {
			select {
			case <-ctx.Done():
				return fmt.Errorf("invalidate %v: %w", keys, ctx.Err())
			case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
			}
		}
	}
	return fmt.Errorf("invalidate %v after %d attempts: %w", keys, retries, lastErr)
}
