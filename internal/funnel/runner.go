// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package funnel

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/menuroulette/internal/catalog"
	"github.com/tomtom215/menuroulette/internal/clock"
	"github.com/tomtom215/menuroulette/internal/logging"
	"github.com/tomtom215/menuroulette/internal/metrics"
	"github.com/tomtom215/menuroulette/internal/preferences"
	"github.com/tomtom215/menuroulette/internal/resolver"
)

// ErrClosed is returned by a Runner after Close.
var ErrClosed = errors.New("session closed")

// Preferences is the slice of the preference store a Runner needs.
type Preferences interface {
	FavoriteSet() map[string]struct{}
	BlacklistSet() map[string]struct{}
	AddHistory(ctx context.Context, cat catalog.Category, timeOfDay clock.TimeOfDay) (preferences.Entry, error)
}

// RunnerConfig configures a Runner. Catalog and Store are required.
type RunnerConfig struct {
	Catalog   *catalog.Catalog
	Store     Preferences
	RNG       resolver.RNG
	Clock     clock.Clock
	MaxPeople int

	// SpinDelay is how long the wheel turns before the winner is revealed.
	// Zero reveals in the same call as the spin.
	SpinDelay time.Duration

	Logger *zerolog.Logger
}

// Runner drives one Session and performs the side effects Advance leaves
// out: it snapshots preferences before each event, records history when a
// category is finalized, and reveals a spun roulette after SpinDelay.
// A Runner is safe for concurrent use.
type Runner struct {
	id     string
	cfg    RunnerConfig
	logger zerolog.Logger

	mu      sync.Mutex
	session Session
	reveal  *resolver.Reveal
	gen     uint64
	closed  bool
}

// NewRunner starts a session at START.
func NewRunner(id string, cfg RunnerConfig) *Runner {
	if cfg.RNG == nil {
		cfg.RNG = resolver.NewSeeded(0)
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.System{}
	}
	var logger zerolog.Logger
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "funnel").Logger()
	} else {
		logger = logging.WithComponent("funnel")
	}
	return &Runner{
		id:      id,
		cfg:     cfg,
		logger:  logger.With().Str("session_id", id).Logger(),
		session: NewSession(id),
	}
}

// ID returns the session id.
func (r *Runner) ID() string {
	return r.id
}

// Session returns a copy of the current state.
func (r *Runner) Session() Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.clone()
}

// View describes the current step.
func (r *Runner) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return BuildView(r.env(), r.session)
}

// Dispatch applies ev and returns the resulting view. A rejected event
// returns the unchanged view together with the error.
func (r *Runner) Dispatch(ctx context.Context, ev Event) (View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return BuildView(r.env(), r.session), ErrClosed
	}
	err := r.apply(ctx, ev)
	return BuildView(r.env(), r.session), err
}

// Close cancels any pending reveal. Later events fail with ErrClosed.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.cancelReveal()
}

// RevealPending reports whether a spun wheel is still turning.
func (r *Runner) RevealPending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reveal.Pending()
}

func (r *Runner) env() Env {
	return Env{
		Catalog:   r.cfg.Catalog,
		Favorites: r.cfg.Store.FavoriteSet(),
		Blacklist: r.cfg.Store.BlacklistSet(),
		RNG:       r.cfg.RNG,
		MaxPeople: r.cfg.MaxPeople,
		TimeOfDay: clock.Of(r.cfg.Clock.Now()),
	}
}

// apply must be called with r.mu held.
func (r *Runner) apply(ctx context.Context, ev Event) error {
	from := r.session.Step
	next, tr, err := Advance(r.env(), r.session, ev)
	if err != nil {
		metrics.RecordRejectedEvent(from.String(), Reason(err))
		r.logger.Debug().Err(err).Str("step", from.String()).Str("kind", string(ev.Kind)).Msg("Event rejected")
		return err
	}
	r.session = next

	if tr.From != tr.To {
		metrics.RecordTransition(tr.From.String(), tr.To.String())
		r.logger.Debug().Str("from", tr.From.String()).Str("to", tr.To.String()).Msg("Step changed")
	}
	if tr.To != StepRoulette || ev.Kind == KindReset {
		r.cancelReveal()
	}
	if tr.To == StepSelectMenu && tr.From != StepSelectMenu {
		metrics.RecordCandidates(len(Candidates(r.env(), r.session)))
	}
	if tr.Finalized != nil {
		r.record(ctx, tr)
	}
	if ev.Kind == KindSpin {
		metrics.RecordSpin(len(r.session.PeopleChoices))
		return r.scheduleReveal(ctx)
	}
	return nil
}

// record writes the final pick to history. A failed save is logged and
// does not affect the session.
func (r *Runner) record(ctx context.Context, tr Transition) {
	metrics.RecordFinalized(string(tr.Route), tr.Finalized.ID)
	tod := clock.Of(r.cfg.Clock.Now())
	entry, err := r.cfg.Store.AddHistory(ctx, *tr.Finalized, tod)
	if err != nil {
		r.logger.Warn().Err(err).Str("category", tr.Finalized.ID).Msg("History not persisted")
		return
	}
	r.logger.Info().
		Str("category", tr.Finalized.ID).
		Str("route", string(tr.Route)).
		Str("entry_id", entry.ID).
		Msg("Category finalized")
}

func (r *Runner) scheduleReveal(ctx context.Context) error {
	r.cancelReveal()
	if r.cfg.SpinDelay <= 0 {
		return r.apply(ctx, Event{Kind: KindReveal})
	}
	gen := r.gen
	r.reveal = resolver.ScheduleReveal(r.cfg.SpinDelay, func() {
		r.fireReveal(gen)
	})
	return nil
}

// fireReveal runs on the timer goroutine. A reveal armed before a reset,
// close or back is stale and does nothing.
func (r *Runner) fireReveal(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || gen != r.gen || r.session.Step != StepRoulette || r.session.Spin == nil {
		return
	}
	r.reveal = nil
	if err := r.apply(context.Background(), Event{Kind: KindReveal}); err != nil {
		r.logger.Warn().Err(err).Msg("Reveal failed")
	}
}

// cancelReveal must be called with r.mu held.
func (r *Runner) cancelReveal() {
	r.gen++
	r.reveal.Cancel()
	r.reveal = nil
}
