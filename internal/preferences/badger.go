// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package preferences

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/menuroulette/internal/logging"
	"github.com/tomtom215/menuroulette/internal/metrics"
)

const (
	keyPrefix   = "prefs:"
	breakerName = "preferences-badger"
)

// BadgerPersister stores each record under prefs:<record> in BadgerDB.
// All access goes through a circuit breaker so a failing disk fails fast
// instead of stalling every request.
type BadgerPersister struct {
	db     *badger.DB
	cb     *gobreaker.CircuitBreaker[[]byte]
	ownsDB bool
}

// OpenBadger opens (or creates) a badger database at path and wraps it.
// With inMemory set the path is ignored and nothing touches disk.
func OpenBadger(path string, inMemory bool) (*BadgerPersister, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil // badger's own logger is too chatty

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db at %q: %w", path, err)
	}
	p := NewBadgerPersister(db)
	p.ownsDB = true
	return p, nil
}

// NewBadgerPersister wraps an already open database. The caller keeps
// ownership of db.
func NewBadgerPersister(db *badger.DB) *BadgerPersister {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		// A missing record is an answer, not a storage fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= 5
			if trip {
				logging.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening preference storage circuit")
			}
			return trip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")
			metrics.RecordBreakerTransition(name, from.String(), to.String(), stateToFloat(to))
		},
	})

	return &BadgerPersister{db: db, cb: cb}
}

// Load reads prefs:<record>. A missing key yields ErrNotFound.
func (p *BadgerPersister) Load(ctx context.Context, record string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.cb.Execute(func() ([]byte, error) {
		var data []byte
		err := p.db.View(func(txn *badger.Txn) error {
			item, err := txn.Get([]byte(keyPrefix + record))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("get %s: %w", record, err)
			}
			data, err = item.ValueCopy(nil)
			return err
		})
		return data, err
	})
}

// Save overwrites prefs:<record> in a single transaction.
func (p *BadgerPersister) Save(ctx context.Context, record string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.cb.Execute(func() ([]byte, error) {
		return nil, p.db.Update(func(txn *badger.Txn) error {
			if err := txn.Set([]byte(keyPrefix+record), data); err != nil {
				return fmt.Errorf("set %s: %w", record, err)
			}
			return nil
		})
	})
	return err
}

// State reports the breaker state, for readiness checks.
func (p *BadgerPersister) State() gobreaker.State {
	return p.cb.State()
}

// Close closes the database if OpenBadger opened it.
func (p *BadgerPersister) Close() error {
	if !p.ownsDB {
		return nil
	}
	return p.db.Close()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
