package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	c := New(4)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", []float32{1, 2, 3})
	vec, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3}, vec)
}

func TestNegativeEntry(t *testing.T) {
	c := New(4)

	c.SetAbsent("http://example.com/broken.jpg")
	vec, ok := c.Get("http://example.com/broken.jpg")
	assert.True(t, ok, "negative entry should count as present")
	assert.Nil(t, vec)

	// A later successful fetch overwrites the marker.
	c.Set("http://example.com/broken.jpg", []float32{0.5})
	vec, ok = c.Get("http://example.com/broken.jpg")
	require.True(t, ok)
	assert.Equal(t, []float32{0.5}, vec)
	assert.Equal(t, 1, c.Len())
}

func TestCapacityNeverExceeded(t *testing.T) {
	c := New(8)
	for i := 0; i < 100; i++ {
		c.Set(fmt.Sprintf("key-%d", i), []float32{float32(i)})
		assert.LessOrEqual(t, c.Len(), 8)
	}
}

func TestLRUEviction(t *testing.T) {
	c := New(3)
	c.Set("a", []float32{1})
	c.Set("b", []float32{2})
	c.Set("c", []float32{3})

	// Touch "a" so "b" becomes least recently used.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("d", []float32{4})

	_, ok = c.Get("b")
	assert.False(t, ok, "least recently used key should be evicted")
	for _, key := range []string{"a", "c", "d"} {
		_, ok := c.Get(key)
		assert.True(t, ok, "key %s should survive", key)
	}
}

func TestSetExistingUpdatesWithoutGrowing(t *testing.T) {
	c := New(2)
	c.Set("a", []float32{1})
	c.Set("b", []float32{2})
	c.Set("a", []float32{9})

	assert.Equal(t, 2, c.Len())
	vec, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []float32{9}, vec)

	// "a" was refreshed by the update, so inserting evicts "b".
	c.Set("c", []float32{3})
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	c := New(64)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := fmt.Sprintf("key-%d", (w*31+i)%128)
				if i%3 == 0 {
					c.Set(key, []float32{float32(i)})
				} else {
					c.Get(key)
				}
			}
		}(w)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 64)
}

func TestStats(t *testing.T) {
	c := New(4)
	c.Set("a", []float32{1})

	c.Get("a")
	c.Get("a")
	c.Get("missing")

	hits, misses := c.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)
}
