// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
)

const (
	// sweepEvery is how often expired entries are dropped in the background.
	sweepEvery = 5 * time.Minute

	// DefaultLoadTimeout bounds a load shared by GetOrLoad callers.
	DefaultLoadTimeout = 2 * time.Minute
)

type item struct {
	value   any
	expires time.Time
}

func (it item) expired(now time.Time) bool {
	return now.After(it.expires)
}

// Cache is a TTL cache for the dashboard's global results. The zero value
// is not usable; create one with New.
type Cache struct {
	mu    sync.RWMutex
	items map[string]item
	ttl   time.Duration

	loads       singleflight.Group
	loadTimeout time.Duration

	hits, misses, evictions atomic.Int64
	lastSweep               atomic.Int64 // unix nanos

	done      chan struct{}
	closeOnce sync.Once
}

// Stats is a point-in-time view of a Cache.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New returns a cache whose entries live for ttl. Expired entries are
// dropped on read and by a sweeper that runs until Close.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		items:       make(map[string]item),
		ttl:         ttl,
		loadTimeout: DefaultLoadTimeout,
		done:        make(chan struct{}),
	}
	c.lastSweep.Store(time.Now().UnixNano())
	go c.sweeper()
	return c
}

// Close stops the sweeper. The cache stays usable and Close may be called
// again.
func (c *Cache) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Get returns the live value stored under key.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()

	switch {
	case !ok:
		c.misses.Add(1)
		return nil, false
	case it.expired(time.Now()):
		c.mu.Lock()
		// Another writer may have refreshed the key in the meantime.
		if cur, still := c.items[key]; still && cur.expired(time.Now()) {
			delete(c.items, key)
			c.evictions.Add(1)
		}
		c.mu.Unlock()
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return it.value, true
}

// Set stores value under key for the cache TTL.
func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key for ttl.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.items[key] = item{value: value, expires: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Delete drops key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	if _, ok := c.items[key]; ok {
		delete(c.items, key)
		c.evictions.Add(1)
	}
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	n := len(c.items)
	clear(c.items)
	c.mu.Unlock()
	c.evictions.Add(int64(n))
}

// GetStats returns the counters and the current number of keys.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	n := len(c.items)
	c.mu.RUnlock()

	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
		TotalKeys:   int64(n),
		LastCleanup: time.Unix(0, c.lastSweep.Load()),
	}
}

// HitRate is the percentage of Get calls that found a live entry.
func (c *Cache) HitRate() float64 {
	hits, misses := c.hits.Load(), c.misses.Load()
	if hits+misses == 0 {
		return 0
	}
	return 100 * float64(hits) / float64(hits+misses)
}

// GetOrLoad returns the value cached under key, calling load on a miss and
// caching what it returns. cached reports whether the value was already
// present. A failed load is not cached.
//
// Concurrent misses on one key share a single load. It runs with the values
// of the first caller's ctx but not its cancellation, bounded by
// DefaultLoadTimeout, so a caller that goes away cannot fail the others.
// Each caller stops waiting when its own ctx is done.
func GetOrLoad[T any](ctx context.Context, c *Cache, key string, load func(context.Context) (T, error)) (value T, cached bool, err error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, true, nil
		}
	}

	done := c.loads.DoChan(key, func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()

		loaded, err := load(lctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, loaded)
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return value, false, ctx.Err()
	case res := <-done:
		if res.Err != nil {
			return value, false, res.Err
		}
		return res.Val.(T), false, nil
	}
}

func (c *Cache) sweeper() {
	t := time.NewTicker(sweepEvery)
	defer t.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-t.C:
			c.sweep()
		}
	}
}

func (c *Cache) sweep() {
	now := time.Now()
	var dropped int64

	c.mu.Lock()
	for key, it := range c.items {
		if it.expired(now) {
			delete(c.items, key)
			dropped++
		}
	}
	c.mu.Unlock()

	c.evictions.Add(dropped)
	c.lastSweep.Store(now.UnixNano())
}

// GenerateKey builds a cache key from a namespace and the parameters of a
// selection, e.g. GenerateKey("recommendations", userID).
func GenerateKey(namespace string, params any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", namespace, params)
	}
	sum := sha256.Sum256(data)
	return namespace + ":" + hex.EncodeToString(sum[:16])
}
