// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package cache

import (
	"container/list"
	"sync"
	"time"
)

const (
	defaultLRUCapacity = 256
	defaultLRUTTL      = time.Hour
)

type lruItem[V any] struct {
	key     string
	value   V
	expires time.Time
}

// LRU is a bounded cache for per-selection results. Once full, adding a
// key evicts the least recently read or written one. Entries also expire
// after the TTL.
type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration

	// Front is most recently used.
	order *list.List
	index map[string]*list.Element

	hits, misses int64
}

// NewLRU returns an LRU of at most capacity entries living for ttl.
// Non-positive arguments select 256 entries and one hour.
func NewLRU[V any](capacity int, ttl time.Duration) *LRU[V] {
	if capacity <= 0 {
		capacity = defaultLRUCapacity
	}
	if ttl <= 0 {
		ttl = defaultLRUTTL
	}
	return &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		index:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the live value for key.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.index[key]
	if !ok {
		c.misses++
		return zero, false
	}
	it := el.Value.(*lruItem[V])
	if time.Now().After(it.expires) {
		c.drop(el)
		c.misses++
		return zero, false
	}

	c.order.MoveToFront(el)
	c.hits++
	return it.value, true
}

// Add stores value under key with a fresh TTL.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := time.Now().Add(c.ttl)
	if el, ok := c.index[key]; ok {
		it := el.Value.(*lruItem[V])
		it.value, it.expires = value, expires
		c.order.MoveToFront(el)
		return
	}

	c.index[key] = c.order.PushFront(&lruItem[V]{key: key, value: value, expires: expires})
	for c.order.Len() > c.capacity {
		c.drop(c.order.Back())
	}
}

// Remove drops key and reports whether it was present.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if ok {
		c.drop(el)
	}
	return ok
}

// Len is the number of stored entries, expired ones included.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear drops every entry. Hit and miss counters are kept.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.index)
}

// Stats reports hits, misses and the current size.
func (c *LRU[V]) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.order.Len()
}

// drop must be called with mu held.
func (c *LRU[V]) drop(el *list.Element) {
	it := c.order.Remove(el).(*lruItem[V])
	delete(c.index, it.key)
}
