package cache

import (
	"sync"
	"time"
)

// PageCache 是首页的整页缓存，按完整URL（路径+查询串）做键。
// 只支持整体失效，不做逐条淘汰；在TTL内可能返回过期内容，
// 发帖成功后必须调用 Flush
type PageCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
	expires map[string]time.Time
	ttl     time.Duration
}

// NewPageCache 创建页面缓存，ttl 为零时缓存处于关闭状态
func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{
		entries: make(map[string][]byte),
		expires: make(map[string]time.Time),
		ttl:     ttl,
	}
}

// Enabled 返回缓存是否开启
func (c *PageCache) Enabled() bool {
	return c != nil && c.ttl > 0
}

// Get 返回指定URL的缓存页面，过期或不存在时返回 false
func (c *PageCache) Get(url string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}

	c.mu.RLock()
	body, ok := c.entries[url]
	expiresAt := c.expires[url]
	c.mu.RUnlock()

	if !ok || time.Now().After(expiresAt) {
		return nil, false
	}
	return body, true
}

// Set 缓存指定URL的页面
func (c *PageCache) Set(url string, body []byte) {
	if !c.Enabled() {
		return
	}

	c.mu.Lock()
	c.entries[url] = body
	c.expires[url] = time.Now().Add(c.ttl)
	c.mu.Unlock()
}

// Flush 整体清空缓存，发帖成功后调用
func (c *PageCache) Flush() {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.entries = make(map[string][]byte)
	c.expires = make(map[string]time.Time)
	c.mu.Unlock()
}
