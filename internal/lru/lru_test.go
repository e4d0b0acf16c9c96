package lru_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schemacore/jsonschema/internal/lru"
)

func TestGetSetRoundTrip(t *testing.T) {
	c := lru.New[string, int](2)
	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := lru.New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // promote a, leaving b as the LRU entry
	c.Set("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "least-recently-used entry should have been evicted")

	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestDelete(t *testing.T) {
	c := lru.New[string, int](2)
	c.Set("a", 1)
	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestUnboundedWhenCapacityNonPositive(t *testing.T) {
	c := lru.New[int, int](0)
	for i := 0; i < 100; i++ {
		c.Set(i, i)
	}
	assert.Equal(t, 100, c.Len())
}
