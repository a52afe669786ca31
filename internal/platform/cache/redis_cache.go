package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// setFieldScript 写入字段；仅当 hash 尚无过期时间（新建）时设置 TTL
var setFieldScript = redis.NewScript(`
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
local ttl = tonumber(ARGV[3])
if ttl > 0 and redis.call('PTTL', KEYS[1]) < 0 then
	redis.call('PEXPIRE', KEYS[1], ttl)
end
return 1
`)

// RedisCache 每个 key 存为一个 Redis hash，整体删除即完成失效
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	if prefix == "" {
		prefix = "portal_berita"
	}
	return &RedisCache{client: client, prefix: prefix}
}

// Key 基于配置前缀拼接 Redis 键名。
func (r *RedisCache) Key(parts ...string) string {
	key := r.prefix
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func (r *RedisCache) GetField(ctx context.Context, key, field string) ([]byte, bool, error) {
	val, err := r.client.HGet(ctx, r.Key("cache", key), field).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisCache) SetField(ctx context.Context, key, field string, value []byte, ttl time.Duration) error {
	return setFieldScript.Run(ctx, r.client, []string{r.Key("cache", key)}, field, value, ttl.Milliseconds()).Err()
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	fullKeys := make([]string, len(keys))
	for i, k := range keys {
		fullKeys[i] = r.Key("cache", k)
	}
	return r.client.Del(ctx, fullKeys...).Err()
}

// Close 关闭 Redis 客户端连接。
func (r *RedisCache) Close() error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("close redis failed: %w", err)
	}
	return nil
}
