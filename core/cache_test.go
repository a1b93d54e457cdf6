package core

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestInMemoryCache_GetSet(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{})
	session := &Session{ID: "session-1", UserID: "user-1", TokenHash: "hash-1"}

	if _, err := cache.Get("hash-1"); !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("Get() on empty cache error = %v, want %v", err, ErrCacheNotFound)
	}

	if err := cache.Set("hash-1", session); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cache.Get("hash-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != session.ID || got.UserID != session.UserID {
		t.Errorf("Get() = %+v, want %+v", got, session)
	}
}

// Requirement: entries older than the TTL are treated as absent and
// removed on read.
func TestInMemoryCache_TTLExpiry(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{TTL: 10 * time.Millisecond})
	if err := cache.Set("hash-1", &Session{ID: "session-1"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := cache.Get("hash-1"); !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("Get() after TTL error = %v, want %v", err, ErrCacheNotFound)
	}
	if cache.Len() != 0 {
		t.Errorf("Len() after expired read = %d, want 0", cache.Len())
	}
}

// Requirement: the cache never grows past MaxSize; an insert at capacity
// evicts an existing entry first.
func TestInMemoryCache_EvictsAtCapacity(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{MaxSize: 3})

	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("hash-%d", i)
		if err := cache.Set(key, &Session{ID: key}); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}

	if cache.Len() > 3 {
		t.Errorf("Len() = %d, want at most 3", cache.Len())
	}
	if got := cache.Stats().Evictions; got != 2 {
		t.Errorf("Stats().Evictions = %d, want 2", got)
	}
}

func TestInMemoryCache_Delete(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{})
	if err := cache.Set("hash-1", &Session{ID: "session-1"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := cache.Delete("hash-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := cache.Get("hash-1"); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() after delete error = %v, want %v", err, ErrCacheNotFound)
	}

	// Deleting an absent key is a no-op
	if err := cache.Delete("hash-1"); err != nil {
		t.Errorf("Delete() of absent key error = %v", err)
	}
	if got := cache.Stats().Deletes; got != 1 {
		t.Errorf("Stats().Deletes = %d, want 1", got)
	}
}

func TestInMemoryCache_Clear(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{})
	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("hash-%d", i)
		if err := cache.Set(key, &Session{ID: key}); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if cache.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", cache.Len())
	}
}

func TestInMemoryCache_Stats(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{TTL: time.Minute, MaxSize: 10})

	cache.Set("hash-1", &Session{ID: "session-1"})
	cache.Get("hash-1")
	cache.Get("hash-1")
	cache.Get("missing")

	stats := cache.Stats()
	if stats.Hits != 2 {
		t.Errorf("Stats().Hits = %d, want 2", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Stats().Misses = %d, want 1", stats.Misses)
	}
	if stats.Sets != 1 {
		t.Errorf("Stats().Sets = %d, want 1", stats.Sets)
	}
	if stats.Size != 1 {
		t.Errorf("Stats().Size = %d, want 1", stats.Size)
	}
	if stats.TTL != time.Minute {
		t.Errorf("Stats().TTL = %v, want %v", stats.TTL, time.Minute)
	}
}

func TestNewInMemoryCache_Defaults(t *testing.T) {
	cache := NewInMemoryCache(CacheConfig{})
	if cache.ttl != 5*time.Minute {
		t.Errorf("default ttl = %v, want 5m", cache.ttl)
	}
	if cache.maxSize != 500 {
		t.Errorf("default maxSize = %d, want 500", cache.maxSize)
	}
}
