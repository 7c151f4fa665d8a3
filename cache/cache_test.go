package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotEmpty(t *testing.T) {
	s := NewSnapshot[int](time.Second)
	_, ok := s.Get()
	assert.False(t, ok)
}

func TestSnapshotSetGet(t *testing.T) {
	s := NewSnapshot[string](time.Minute)
	s.Set("fresh")

	got, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "fresh", got)
}

func TestSnapshotExpires(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewSnapshot[string](15 * time.Second)
	s.now = func() time.Time { return now }

	s.Set("fresh")

	now = now.Add(14 * time.Second)
	_, ok := s.Get()
	assert.True(t, ok, "still inside the window")

	now = now.Add(time.Second)
	_, ok = s.Get()
	assert.False(t, ok, "window elapsed")
}

func TestSnapshotInvalidate(t *testing.T) {
	s := NewSnapshot[string](time.Minute)
	s.Set("fresh")
	s.Invalidate()

	_, ok := s.Get()
	assert.False(t, ok)
}

func TestSnapshotZeroTTLUsesDefault(t *testing.T) {
	s := NewSnapshot[int](0)
	assert.Equal(t, DefaultTTL, s.ttl)
}
