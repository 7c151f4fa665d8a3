// Package cache provides the short-lived snapshot cache in front of the
// campaign-data read. It is an explicit object handed to every mutation
// path so invalidation is a method call, not a side effect of package
// initialization.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL matches the window the web client tolerated for stale
// campaign numbers.
const DefaultTTL = 15 * time.Second

type Snapshot[T any] struct {
	mu        sync.RWMutex
	ttl       time.Duration
	value     T
	fetchedAt time.Time
	valid     bool

	now func() time.Time // test hook
}

func NewSnapshot[T any](ttl time.Duration) *Snapshot[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Snapshot[T]{ttl: ttl, now: time.Now}
}

// Get returns the cached value and whether it is still fresh.
func (s *Snapshot[T]) Get() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.valid || s.now().Sub(s.fetchedAt) >= s.ttl {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Set stores a freshly computed value and restarts the TTL window.
func (s *Snapshot[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = v
	s.fetchedAt = s.now()
	s.valid = true
}

// Invalidate drops the cached value. Every mutation calls this so the
// next read recomputes from the store.
func (s *Snapshot[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.valid = false
}
