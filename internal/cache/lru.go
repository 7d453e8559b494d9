// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

// Package cache provides a generic LRU cache with sliding TTL, used as the
// live session registry.
package cache

import (
	"sync"
	"time"
)

// EvictReason says why an entry left the cache.
type EvictReason string

// Eviction reasons passed to the OnEvict hook.
const (
	EvictCapacity EvictReason = "capacity"
	EvictExpired  EvictReason = "expired"
	EvictRemoved  EvictReason = "removed"
)

type entry[V any] struct {
	key       string
	value     V
	prev      *entry[V]
	next      *entry[V]
	expiresAt time.Time
}

// Options configures an LRU.
type Options[V any] struct {
	// Capacity is the maximum number of entries. Default 10000.
	Capacity int

	// TTL is refreshed on every Get and Add. Default 5 minutes.
	TTL time.Duration

	// OnEvict runs after an entry leaves the cache, outside the lock, so
	// it may call back into the cache.
	OnEvict func(key string, value V, reason EvictReason)

	// Now replaces time.Now in tests.
	Now func() time.Time
}

// LRU is a thread-safe least recently used cache with O(1) Get, Add and
// Remove. Expired entries are dropped lazily on access and in bulk by
// CleanupExpired.
//
// A doubly-linked list orders entries and a map indexes them.
// head.next is the most recently used, tail.prev the least.
type LRU[V any] struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	onEvict  func(key string, value V, reason EvictReason)
	now      func() time.Time

	items map[string]*entry[V]
	head  *entry[V]
	tail  *entry[V]

	hits   int64
	misses int64
}

type evicted[V any] struct {
	key    string
	value  V
	reason EvictReason
}

// New creates an LRU.
func New[V any](opts Options[V]) *LRU[V] {
	if opts.Capacity <= 0 {
		opts.Capacity = 10000
	}
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &LRU[V]{
		capacity: opts.Capacity,
		ttl:      opts.TTL,
		onEvict:  opts.OnEvict,
		now:      opts.Now,
		items:    make(map[string]*entry[V]),
		head:     &entry[V]{},
		tail:     &entry[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the value for key and refreshes its TTL and recency.
func (c *LRU[V]) Get(key string) (V, bool) {
	var zero V
	var out []evicted[V]
	defer func() { c.notify(out) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}
	now := c.now()
	if now.After(e.expiresAt) {
		out = append(out, c.remove(e, EvictExpired))
		c.misses++
		return zero, false
	}
	e.expiresAt = now.Add(c.ttl)
	c.moveToFront(e)
	c.hits++
	return e.value, true
}

// Add inserts or replaces the value for key. A replaced value is not
// reported to OnEvict. Over capacity, the least recently used entry goes.
func (c *LRU[V]) Add(key string, value V) {
	var out []evicted[V]
	defer func() { c.notify(out) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(e)
	c.items[key] = e

	for len(c.items) > c.capacity {
		out = append(out, c.remove(c.tail.prev, EvictCapacity))
	}
}

// Remove deletes key. It reports whether the key was present.
func (c *LRU[V]) Remove(key string) bool {
	var out []evicted[V]
	defer func() { c.notify(out) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return false
	}
	out = append(out, c.remove(e, EvictRemoved))
	return true
}

// Len returns the number of entries, expired ones included until swept.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// CleanupExpired removes every expired entry and returns how many went.
func (c *LRU[V]) CleanupExpired() int {
	var out []evicted[V]
	defer func() { c.notify(out) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for e := c.tail.prev; e != c.head; {
		prev := e.prev
		if now.After(e.expiresAt) {
			out = append(out, c.remove(e, EvictExpired))
		}
		e = prev
	}
	return len(out)
}

// Purge removes every entry, reporting each to OnEvict.
func (c *LRU[V]) Purge() {
	var out []evicted[V]
	defer func() { c.notify(out) }()

	c.mu.Lock()
	defer c.mu.Unlock()
	for e := c.tail.prev; e != c.head; {
		prev := e.prev
		out = append(out, c.remove(e, EvictRemoved))
		e = prev
	}
}

// Stats returns hit and miss counts and the current size.
func (c *LRU[V]) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.items)
}

func (c *LRU[V]) notify(out []evicted[V]) {
	if c.onEvict == nil {
		return
	}
	for _, ev := range out {
		c.onEvict(ev.key, ev.value, ev.reason)
	}
}

// Internal methods (must be called with lock held)

func (c *LRU[V]) addToFront(e *entry[V]) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *LRU[V]) moveToFront(e *entry[V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.addToFront(e)
}

func (c *LRU[V]) remove(e *entry[V], reason EvictReason) evicted[V] {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(c.items, e.key)
	return evicted[V]{key: e.key, value: e.value, reason: reason}
}
