package services

import (
	"fmt"
	"testing"
	"time"
)

func TestLRUCacheSetGet(t *testing.T) {
	cache := NewLRUCache(10)

	cache.Set("a", 1, time.Minute)
	if got := cache.Get("a"); got != 1 {
		t.Errorf("Get(a) = %v, expected 1", got)
	}
	if got := cache.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %v, expected nil", got)
	}
}

func TestLRUCacheExpiration(t *testing.T) {
	cache := NewLRUCache(10)

	cache.Set("a", 1, -time.Second)
	if got := cache.Get("a"); got != nil {
		t.Errorf("expired entry returned %v, expected nil", got)
	}
	if cache.Size() != 0 {
		t.Errorf("Size() = %d after expired read, expected 0", cache.Size())
	}
}

func TestLRUCacheEviction(t *testing.T) {
	cache := NewLRUCache(2)

	cache.Set("a", 1, time.Minute)
	cache.Set("b", 2, time.Minute)
	cache.Get("a") // refresh a, making b the eviction candidate
	cache.Set("c", 3, time.Minute)

	if got := cache.Get("b"); got != nil {
		t.Errorf("least recently used entry survived eviction: %v", got)
	}
	if got := cache.Get("a"); got != 1 {
		t.Errorf("recently used entry evicted, Get(a) = %v", got)
	}
	if got := cache.Get("c"); got != 3 {
		t.Errorf("Get(c) = %v, expected 3", got)
	}
}

func TestLRUCacheUpdateExisting(t *testing.T) {
	cache := NewLRUCache(2)

	cache.Set("a", 1, time.Minute)
	cache.Set("a", 2, time.Minute)

	if got := cache.Get("a"); got != 2 {
		t.Errorf("Get(a) = %v after update, expected 2", got)
	}
	if cache.Size() != 1 {
		t.Errorf("Size() = %d, expected 1", cache.Size())
	}
}

func TestLRUCacheCleanupExpired(t *testing.T) {
	cache := NewLRUCache(10)

	for i := 0; i < 5; i++ {
		cache.Set(fmt.Sprintf("live-%d", i), i, time.Minute)
	}
	for i := 0; i < 3; i++ {
		cache.Set(fmt.Sprintf("dead-%d", i), i, -time.Second)
	}

	removed := cache.CleanupExpired()
	if removed != 3 {
		t.Errorf("CleanupExpired() = %d, expected 3", removed)
	}
	if cache.Size() != 5 {
		t.Errorf("Size() = %d after cleanup, expected 5", cache.Size())
	}
}
