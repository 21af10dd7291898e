package services

import (
	"container/list"
	"sync"
	"time"
)

// Cache is the interface embedding generation caches behind.
type Cache interface {
	Get(key string) interface{}
	Set(key string, value interface{}, ttl time.Duration)
	Delete(key string)
	Clear()
	Size() int
}

type cacheEntry struct {
	key        string
	value      interface{}
	expiration time.Time
}

// LRUCache is a thread-safe LRU cache with per-entry TTL.
type LRUCache struct {
	capacity int
	mu       sync.RWMutex
	cache    map[string]*list.Element
	lruList  *list.List
}

// NewLRUCache creates an LRU cache with the given capacity.
func NewLRUCache(capacity int) *LRUCache {
	return &LRUCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lruList:  list.New(),
	}
}

// Get returns the cached value, or nil when absent or expired.
func (c *LRUCache) Get(key string) interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, found := c.cache[key]
	if !found {
		return nil
	}

	entry := element.Value.(*cacheEntry)
	if time.Now().After(entry.expiration) {
		c.removeElement(element)
		return nil
	}

	c.lruList.MoveToBack(element)
	return entry.value
}

// Set stores a value, evicting the least recently used entry when full.
func (c *LRUCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiration := time.Now().Add(ttl)

	if element, found := c.cache[key]; found {
		c.lruList.MoveToBack(element)
		entry := element.Value.(*cacheEntry)
		entry.value = value
		entry.expiration = expiration
		return
	}

	if c.lruList.Len() >= c.capacity {
		if oldest := c.lruList.Front(); oldest != nil {
			c.removeElement(oldest)
		}
	}

	entry := &cacheEntry{key: key, value: value, expiration: expiration}
	c.cache[key] = c.lruList.PushBack(entry)
}

// Delete removes an entry.
func (c *LRUCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, found := c.cache[key]; found {
		c.removeElement(element)
	}
}

// Clear empties the cache.
func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[string]*list.Element)
	c.lruList.Init()
}

// Size returns the current entry count, expired entries included.
func (c *LRUCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lruList.Len()
}

// caller must hold the lock
func (c *LRUCache) removeElement(element *list.Element) {
	c.lruList.Remove(element)
	entry := element.Value.(*cacheEntry)
	delete(c.cache, entry.key)
}

// CleanupExpired drops every expired entry and reports how many were removed.
func (c *LRUCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0

	var next *list.Element
	for element := c.lruList.Front(); element != nil; element = next {
		next = element.Next()
		entry := element.Value.(*cacheEntry)
		if now.After(entry.expiration) {
			c.removeElement(element)
			removed++
		}
	}

	return removed
}

// StartCleanupRoutine sweeps expired entries on the given interval. Stop the
// returned ticker to end the routine.
func (c *LRUCache) StartCleanupRoutine(interval time.Duration) *time.Ticker {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			c.CleanupExpired()
		}
	}()
	return ticker
}
