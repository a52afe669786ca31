package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	fields    map[string][]byte
	expiresAt time.Time
}

// MemoryCache 进程内缓存，Redis 不可用时使用
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*memoryEntry)}
}

func (m *MemoryCache) GetField(_ context.Context, key, field string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok || (!entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt)) {
		return nil, false, nil
	}
	val, ok := entry.fields[field]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

func (m *MemoryCache) SetField(_ context.Context, key, field string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// 过期时间只在条目创建时设定，后续写入其他分页不会延长整个 key 的寿命
	entry, ok := m.entries[key]
	if !ok || (!entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt)) {
		entry = &memoryEntry{fields: make(map[string][]byte)}
		if ttl > 0 {
			entry.expiresAt = time.Now().Add(ttl)
		}
		m.entries[key] = entry
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	entry.fields[field] = stored
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *MemoryCache) Close() error {
	return nil
}
