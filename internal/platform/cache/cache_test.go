package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"portal-berita-server/internal/config"

	"github.com/redis/go-redis/v9"
)

// 测试内容：验证内存缓存的写入、读取与按 key 删除。
func TestMemoryCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if err := c.SetField(ctx, "all_posts", "1:10", []byte("page1"), time.Minute); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	_ = c.SetField(ctx, "all_posts", "2:10", []byte("page2"), time.Minute)

	val, ok, err := c.GetField(ctx, "all_posts", "2:10")
	if err != nil || !ok || string(val) != "page2" {
		t.Fatalf("非预期读取结果: val=%q ok=%v err=%v", val, ok, err)
	}

	if err := c.Delete(ctx, "all_posts"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.GetField(ctx, "all_posts", "1:10"); ok {
		t.Fatalf("期望删除 key 后所有分页字段失效")
	}
}

// 测试内容：验证内存缓存条目过期后不再命中。
func TestMemoryCache_Expires(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	_ = c.SetField(ctx, "latest_posts", "1:10", []byte("x"), time.Millisecond)

	time.Sleep(5 * time.Millisecond)
	if _, ok, _ := c.GetField(ctx, "latest_posts", "1:10"); ok {
		t.Fatalf("期望过期条目未命中")
	}
}

// 测试内容：验证持续写入其他分页不会延长已有分页的过期时间。
func TestMemoryCache_WritesDoNotExtendExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	ttl := 150 * time.Millisecond

	_ = c.SetField(ctx, "all_posts", "1:10", []byte("stale"), ttl)
	deadline := time.Now().Add(400 * time.Millisecond)
	for time.Now().Before(deadline) {
		_ = c.SetField(ctx, "all_posts", "2:10", []byte("page2"), ttl)
		time.Sleep(50 * time.Millisecond)
	}

	if _, ok, _ := c.GetField(ctx, "all_posts", "1:10"); ok {
		t.Fatalf("期望超过 TTL 的分页在持续写入下仍然过期")
	}
}

// 测试内容：验证过期后的首次写入重新开始计时。
func TestMemoryCache_ExpiredEntryStartsFresh(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_ = c.SetField(ctx, "featured_posts", "1:5", []byte("old"), 20*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	_ = c.SetField(ctx, "featured_posts", "2:5", []byte("new"), time.Minute)

	if _, ok, _ := c.GetField(ctx, "featured_posts", "1:5"); ok {
		t.Fatalf("期望旧分页随过期条目一起清除")
	}
	if val, ok, _ := c.GetField(ctx, "featured_posts", "2:5"); !ok || string(val) != "new" {
		t.Fatalf("期望新写入命中, val=%q ok=%v", val, ok)
	}
}

// 测试内容：验证 Redis 未启用时降级为内存缓存。
func TestNew_DisabledUsesMemory(t *testing.T) {
	c := New(config.RedisConfig{Enabled: false})
	if _, ok := c.(*MemoryCache); !ok {
		t.Fatalf("期望 *MemoryCache，实际为 %T", c)
	}
}

// 测试内容：验证 Redis 不可达时降级为内存缓存。
func TestNew_UnreachableRedisFallsBack(t *testing.T) {
	c := New(config.RedisConfig{Enabled: true, Addr: "127.0.0.1:1"})
	if _, ok := c.(*MemoryCache); !ok {
		t.Fatalf("期望 *MemoryCache，实际为 %T", c)
	}
}

// 测试内容：验证 Redis key 使用前缀拼接。
func TestRedisCache_Key(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer func() { _ = client.Close() }()

	r := NewRedisCache(client, "")
	if got := r.Key("cache", "all_posts"); got != "portal_berita:cache:all_posts" {
		t.Fatalf("非预期 key: %q", got)
	}
}

// 测试内容：验证 Redis 不可用时读写返回错误。
func TestRedisCache_UnavailableReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	r := NewRedisCache(client, "test")
	defer func() { _ = r.Close() }()

	if _, _, err := r.GetField(context.Background(), "k", "f"); err == nil {
		t.Fatalf("期望 redis 错误")
	}
	if err := r.SetField(context.Background(), "k", "f", []byte("v"), time.Minute); err == nil {
		t.Fatalf("期望 redis 错误")
	}
	if err := r.Delete(context.Background(), "k"); err == nil {
		t.Fatalf("期望 redis 错误")
	}
}

type flakyCache struct {
	*MemoryCache
	failures int
	calls    int
}

func (f *flakyCache) Delete(ctx context.Context, keys ...string) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("connection reset")
	}
	return f.MemoryCache.Delete(ctx, keys...)
}

// 测试内容：验证失效操作在重试次数内恢复时成功。
func TestInvalidate_RetriesUntilSuccess(t *testing.T) {
	c := &flakyCache{MemoryCache: NewMemoryCache(), failures: 2}
	if err := Invalidate(context.Background(), c, 3, "all_posts"); err != nil {
		t.Fatalf("期望重试后成功，实际为 %v", err)
	}
	if c.calls != 3 {
		t.Fatalf("期望调用 3 次，实际为 %d", c.calls)
	}
}

// 测试内容：验证重试耗尽后返回错误而不是静默成功。
func TestInvalidate_ExhaustedReturnsError(t *testing.T) {
	c := &flakyCache{MemoryCache: NewMemoryCache(), failures: 10}
	err := Invalidate(context.Background(), c, 2, "all_posts", "latest_posts")
	if err == nil {
		t.Fatalf("期望返回错误")
	}
	if c.calls != 2 {
		t.Fatalf("期望调用 2 次，实际为 %d", c.calls)
	}
}
