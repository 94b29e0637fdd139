package cache

import (
	"strings"
	"sync"
	"time"
)

type Item[V any] struct {
	Value      V
	Expiration int64
}

// Cache is an in-process TTL map. It stands in for Redis when Redis is
// disabled and backs the local rate limit windows.
type Cache[V any] struct {
	items map[string]Item[V]
	mu    sync.RWMutex
	stop  chan struct{}
	once  sync.Once
}

func NewCache[V any](gcInterval time.Duration) *Cache[V] {
	cache := &Cache[V]{
		items: make(map[string]Item[V]),
		stop:  make(chan struct{}),
	}
	if gcInterval > 0 {
		go cache.startGC(gcInterval)
	}
	return cache
}

func (c *Cache[V]) Set(key string, value V, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = Item[V]{
		Value:      value,
		Expiration: time.Now().Add(duration).UnixNano(),
	}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found || time.Now().UnixNano() > item.Expiration {
		var zero V
		return zero, false
	}
	return item.Value, true
}

// Update applies fn to the live value under key (the zero value when absent
// or expired) and stores the result, atomically.
func (c *Cache[V]) Update(key string, duration time.Duration, fn func(current V, found bool) V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, found := c.items[key]
	if found && time.Now().UnixNano() > item.Expiration {
		var zero V
		item, found = Item[V]{Value: zero}, false
	}

	next := fn(item.Value, found)
	c.items[key] = Item[V]{Value: next, Expiration: time.Now().Add(duration).UnixNano()}
	return next
}

func (c *Cache[V]) Delete(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.items, key)
	}
}

// DeletePrefix removes every key starting with prefix.
func (c *Cache[V]) DeletePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the expiry sweeper.
func (c *Cache[V]) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache[V]) startGC(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.deleteExpired()
		}
	}
}

func (c *Cache[V]) deleteExpired() {
	now := time.Now().UnixNano()
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range c.items {
		if now > v.Expiration {
			delete(c.items, k)
		}
	}
}
