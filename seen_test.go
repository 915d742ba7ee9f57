package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeenCache_FreshOnFirstSighting(t *testing.T) {
	s := NewSeenCache()
	assert.True(t, s.Fresh("B", 1))
}

func TestSeenCache_StaleAfterRecord(t *testing.T) {
	s := NewSeenCache()
	s.Record("B", 5)

	assert.False(t, s.Fresh("B", 5))
	assert.False(t, s.Fresh("B", 4))
	assert.True(t, s.Fresh("B", 6))
}

func TestSeenCache_MonotonicAcrossSources(t *testing.T) {
	s := NewSeenCache()
	s.Record("A", 1)
	s.Record("B", 1)

	assert.True(t, s.Fresh("A", 2))
	assert.False(t, s.Fresh("B", 1))
}

func TestSeenCache_OutOfOrderStaleDoesNotRegress(t *testing.T) {
	s := NewSeenCache()
	s.Record("S", 5)
	require := assert.New(t)
	require.False(s.Fresh("S", 4))

	// A stale packet's seq must never be recorded; the cache is
	// monotonically non-decreasing.
	if s.Fresh("S", 4) {
		s.Record("S", 4)
	}
	require.False(s.Fresh("S", 5))
}
