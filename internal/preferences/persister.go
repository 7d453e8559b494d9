// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package preferences

import (
	"context"
	"errors"
	"sync"
)

// Record names. Each is stored and saved independently.
const (
	RecordFavorites = "favorites"
	RecordBlacklist = "blacklist"
	RecordHistory   = "history"
)

// ErrNotFound is returned by a Persister when a record has never been saved.
var ErrNotFound = errors.New("preferences: record not found")

// Persister is the durable key-value backing of a Store.
type Persister interface {
	Load(ctx context.Context, record string) ([]byte, error)
	Save(ctx context.Context, record string, data []byte) error
}

// MemoryPersister keeps records in process memory. It is used by tests and
// when storage.in_memory is set without badger.
type MemoryPersister struct {
	mu      sync.Mutex
	data    map[string][]byte
	saveErr error
	saves   int
}

// NewMemoryPersister creates an empty MemoryPersister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{data: make(map[string][]byte)}
}

// Load returns a copy of the stored record.
func (m *MemoryPersister) Load(_ context.Context, record string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[record]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Save stores a copy of data, or returns the injected failure.
func (m *MemoryPersister) Save(_ context.Context, record string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[record] = append([]byte(nil), data...)
	return nil
}

// Put seeds a raw record, bypassing failure injection.
func (m *MemoryPersister) Put(record string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[record] = append([]byte(nil), data...)
}

// FailSaves makes every later Save return err. Pass nil to recover.
func (m *MemoryPersister) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Saves reports how many Save calls were made.
func (m *MemoryPersister) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
