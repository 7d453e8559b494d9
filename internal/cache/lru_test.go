// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type evictLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *evictLog) record(key string, _ int, reason EvictReason) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, key+":"+string(reason))
}

func (l *evictLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

func TestLRU_BasicOperations(t *testing.T) {
	c := New(Options[int]{Capacity: 3, TTL: time.Minute})

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		got, found := c.Get(key)
		if !found || got != want {
			t.Errorf("Get(%q) = (%d, %v), want (%d, true)", key, got, found, want)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Expected len 3, got %d", c.Len())
	}

	c.Add("a", 10)
	if got, _ := c.Get("a"); got != 10 {
		t.Errorf("replaced value = %d, want 10", got)
	}
	if c.Len() != 3 {
		t.Errorf("replace changed len to %d", c.Len())
	}
}

func TestLRU_EvictionOrder(t *testing.T) {
	log := &evictLog{}
	c := New(Options[int]{Capacity: 3, TTL: time.Minute, OnEvict: log.record})

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	c.Get("a") // a becomes most recently used
	c.Add("d", 4)

	if _, found := c.Get("b"); found {
		t.Error("Expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := c.Get(key); !found {
			t.Errorf("Expected %q to be present", key)
		}
	}
	if got := log.all(); len(got) != 1 || got[0] != "b:capacity" {
		t.Errorf("evictions = %v, want [b:capacity]", got)
	}
}

func TestLRU_SlidingTTL(t *testing.T) {
	clk := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	log := &evictLog{}
	c := New(Options[int]{Capacity: 10, TTL: time.Minute, Now: clk.Now, OnEvict: log.record})

	c.Add("a", 1)
	c.Add("b", 2)

	clk.Advance(40 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a should be alive")
	}

	clk.Advance(40 * time.Second) // a refreshed at 40s, b expired at 60s
	if _, ok := c.Get("a"); !ok {
		t.Error("Get should refresh TTL")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("b should have expired")
	}
	if got := log.all(); len(got) != 1 || got[0] != "b:expired" {
		t.Errorf("evictions = %v", got)
	}
}

func TestLRU_CleanupExpired(t *testing.T) {
	clk := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	log := &evictLog{}
	c := New(Options[int]{TTL: time.Minute, Now: clk.Now, OnEvict: log.record})

	c.Add("old1", 1)
	c.Add("old2", 2)
	clk.Advance(30 * time.Second)
	c.Add("fresh", 3)
	clk.Advance(45 * time.Second)

	if removed := c.CleanupExpired(); removed != 2 {
		t.Errorf("CleanupExpired() = %d, want 2", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if len(log.all()) != 2 {
		t.Errorf("evictions = %v", log.all())
	}
}

func TestLRU_RemoveAndPurge(t *testing.T) {
	log := &evictLog{}
	c := New(Options[int]{OnEvict: log.record})

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	if !c.Remove("a") {
		t.Error("Remove(a) = false")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) = true")
	}
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() after purge = %d", c.Len())
	}
	if got := log.all(); len(got) != 3 || got[0] != "a:removed" {
		t.Errorf("evictions = %v", got)
	}
}

func TestLRU_OnEvictMayReenter(t *testing.T) {
	var c *LRU[int]
	c = New(Options[int]{Capacity: 1, OnEvict: func(key string, _ int, _ EvictReason) {
		_ = c.Len() // would deadlock if called under the lock
	}})
	c.Add("a", 1)
	c.Add("b", 2)
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRU_Stats(t *testing.T) {
	c := New(Options[string]{})
	c.Add("a", "x")
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	hits, misses, size := c.Stats()
	if hits != 2 || misses != 1 || size != 1 {
		t.Errorf("Stats() = (%d, %d, %d), want (2, 1, 1)", hits, misses, size)
	}
}

func TestLRU_Concurrency(t *testing.T) {
	c := New(Options[int]{Capacity: 100})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d-%d", id, j)
				c.Add(key, j)
				c.Get(key)
				if j%10 == 0 {
					c.Remove(key)
				}
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}
