// Copyright 2026 The Semrank Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cache provides a bounded, concurrency-safe memo for embedding
// vectors keyed by URL or text content, with least-recently-used
// eviction and negative entries for known-unfetchable keys.
package cache

import (
	"container/list"
	"sync"
)

// VectorCache is an LRU cache mapping string keys to embedding vectors.
// A nil vector stored via SetAbsent records a key that is known to be
// unfetchable, so repeated fetch attempts short-circuit.
//
// All methods are safe for concurrent use; a lookup and its recency
// update happen atomically under one lock.
type VectorCache struct {
	mu       sync.Mutex
	entries  map[string]*list.Element
	order    *list.List
	capacity int
	hits     uint64
	misses   uint64
}

type entry struct {
	key    string
	vector []float32
	absent bool
}

// New creates a VectorCache holding at most capacity entries.
func New(capacity int) *VectorCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &VectorCache{
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
		capacity: capacity,
	}
}

// Get returns the vector stored for key. The second return reports
// whether the key is present at all; a present key with a nil vector is
// a negative entry. A hit marks the key most recently used.
func (c *VectorCache) Get(key string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.order.MoveToFront(el)

	e := el.Value.(*entry)
	if e.absent {
		return nil, true
	}
	return e.vector, true
}

// Set stores a vector for key, marking it most recently used. Setting
// an existing key updates its value without growing the cache. The
// least-recently-used entry is evicted when capacity is exceeded.
func (c *VectorCache) Set(key string, vector []float32) {
	c.set(key, vector, false)
}

// SetAbsent records key as known-unfetchable. Subsequent Get calls
// return (nil, true) until the entry is evicted.
func (c *VectorCache) SetAbsent(key string) {
	c.set(key, nil, true)
}

func (c *VectorCache) set(key string, vector []float32, absent bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry)
		e.vector = vector
		e.absent = absent
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entry{key: key, vector: vector, absent: absent})
	c.entries[key] = el

	for len(c.entries) > c.capacity {
		c.evictOldest()
	}
}

// Len returns the number of entries currently cached.
func (c *VectorCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the configured maximum size.
func (c *VectorCache) Capacity() int {
	return c.capacity
}

// Stats returns the cumulative hit and miss counts.
func (c *VectorCache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// evictOldest removes the least recently used entry.
// Must be called with the lock held.
func (c *VectorCache) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	e := oldest.Value.(*entry)
	c.order.Remove(oldest)
	delete(c.entries, e.key)
}
