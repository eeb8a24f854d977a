package game

import (
	"log"
	"time"
)

// queryEntry 查询缓存中的一项
type queryEntry struct {
	value    interface{}
	hasValue bool
	stale    bool
	fetching bool
	// refetch 拉取进行中又被 Invalidate，结果落地后仍需再拉一次
	refetch   bool
	updatedAt time.Time
}

// QueryCache 按查询名缓存服务端数据
//
// 由应用外壳创建并显式传给需要的场景，不是全局变量。
// 所有方法只在 UI 线程（ebiten Update）上调用，因此不加锁。
//
// 生命周期：
//   - 首次访问的键视为过期，需要拉取
//   - Set 写入新值并清除过期标记
//   - Invalidate 标记过期，由对应的查询在下一帧重新拉取
//   - 拉取途中的 Invalidate 不会被随后落地的结果覆盖
type QueryCache struct {
	entries map[string]*queryEntry
	now     func() time.Time
}

// NewQueryCache 创建空的查询缓存
func NewQueryCache() *QueryCache {
	return &QueryCache{
		entries: make(map[string]*queryEntry),
		now:     time.Now,
	}
}

func (c *QueryCache) entry(key string) *queryEntry {
	e, ok := c.entries[key]
	if !ok {
		e = &queryEntry{stale: true}
		c.entries[key] = e
	}
	return e
}

// Get 返回缓存值；从未写入时 ok 为 false
func (c *QueryCache) Get(key string) (interface{}, bool) {
	e, ok := c.entries[key]
	if !ok || !e.hasValue {
		return nil, false
	}
	return e.value, true
}

// Set 写入缓存值
func (c *QueryCache) Set(key string, value interface{}) {
	e := c.entry(key)
	e.value = value
	e.hasValue = true
	e.stale = e.refetch
	e.refetch = false
	e.fetching = false
	e.updatedAt = c.now()
}

// Invalidate 标记缓存过期，保留旧值供显示
func (c *QueryCache) Invalidate(key string) {
	e := c.entry(key)
	e.stale = true
	if e.fetching {
		e.refetch = true
	}
	log.Printf("[QueryCache] invalidate %q", key)
}

// IsStale 报告键是否需要重新拉取
// 正在拉取中的键不算过期，避免重复请求
func (c *QueryCache) IsStale(key string) bool {
	e := c.entry(key)
	return e.stale && !e.fetching
}

// MarkFetching 标记键开始拉取，清除过期标记
func (c *QueryCache) MarkFetching(key string) {
	e := c.entry(key)
	e.fetching = true
	e.stale = false
	e.refetch = false
}

// MarkFailed 标记拉取失败：保留旧值，不自动重试
// 拉取途中收到的 Invalidate 仍然有效
func (c *QueryCache) MarkFailed(key string) {
	e := c.entry(key)
	e.stale = e.refetch
	e.refetch = false
	e.fetching = false
}

// IsFetching 报告键是否正在拉取
func (c *QueryCache) IsFetching(key string) bool {
	e, ok := c.entries[key]
	return ok && e.fetching
}

// UpdatedAt 返回最近一次写入时间
func (c *QueryCache) UpdatedAt(key string) (time.Time, bool) {
	e, ok := c.entries[key]
	if !ok || !e.hasValue {
		return time.Time{}, false
	}
	return e.updatedAt, true
}

// GetAs 以指定类型读取缓存值
func GetAs[T any](c *QueryCache, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}
