// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package preferences

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/menuroulette/internal/catalog"
	"github.com/tomtom215/menuroulette/internal/clock"
	"github.com/tomtom215/menuroulette/internal/logging"
	"github.com/tomtom215/menuroulette/internal/metrics"
)

// MaxHistory is the number of history entries kept, newest first.
const MaxHistory = 50

// ErrPersist wraps every failure to write a record. The in-memory change
// that triggered the write has already been applied when it is returned.
var ErrPersist = errors.New("preferences: persist failed")

// Entry is one finalized pick.
type Entry struct {
	ID        string           `json:"id"`
	Category  catalog.Category `json:"category"`
	Timestamp time.Time        `json:"timestamp"`
	TimeOfDay clock.TimeOfDay  `json:"time_of_day"`
}

// StatEntry is the pick count of one category.
type StatEntry struct {
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	Icon       string    `json:"icon"`
	Count      int       `json:"count"`
	LastPicked time.Time `json:"last_picked"`
}

// Options configures a Store. Zero fields get defaults.
type Options struct {
	Logger *zerolog.Logger
	Clock  clock.Clock
	NewID  func() string
}

// Store holds favorites, blacklist and history in memory and writes each
// record through to a Persister after every mutation. Writers of one record
// are serialized; different records do not block each other.
type Store struct {
	persister Persister
	logger    zerolog.Logger
	clock     clock.Clock
	newID     func() string

	favMu     sync.RWMutex
	favorites map[string]struct{}

	blMu      sync.RWMutex
	blacklist map[string]struct{}

	histMu  sync.RWMutex
	history []Entry
}

// Open loads all three records from p. A missing record starts empty; a
// record that cannot be decoded is logged and also starts empty.
func Open(ctx context.Context, p Persister, opts Options) (*Store, error) {
	s := &Store{
		persister: p,
		clock:     opts.Clock,
		newID:     opts.NewID,
		favorites: make(map[string]struct{}),
		blacklist: make(map[string]struct{}),
	}
	if opts.Logger != nil {
		s.logger = opts.Logger.With().Str("component", "preferences").Logger()
	} else {
		s.logger = logging.WithComponent("preferences")
	}
	if s.clock == nil {
		s.clock = clock.System{}
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.New().String() }
	}

	var ids []string
	if err := s.load(ctx, RecordFavorites, &ids); err != nil {
		return nil, err
	}
	addAll(s.favorites, ids)

	ids = nil
	if err := s.load(ctx, RecordBlacklist, &ids); err != nil {
		return nil, err
	}
	addAll(s.blacklist, ids)

	if err := s.load(ctx, RecordHistory, &s.history); err != nil {
		return nil, err
	}
	if len(s.history) > MaxHistory {
		s.history = s.history[:MaxHistory]
	}

	s.logger.Debug().
		Int("favorites", len(s.favorites)).
		Int("blacklist", len(s.blacklist)).
		Int("history", len(s.history)).
		Msg("Preferences loaded")
	return s, nil
}

func (s *Store) load(ctx context.Context, record string, into interface{}) error {
	data, err := s.persister.Load(ctx, record)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", record, err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		s.logger.Warn().Err(err).Str("record", record).Msg("Corrupt preference record, starting empty")
		return nil
	}
	return nil
}

// save must be called with the record's write lock held.
func (s *Store) save(ctx context.Context, record, op string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", record, err)
	}
	start := time.Now()
	err = s.persister.Save(ctx, record, data)
	metrics.RecordPreferenceWrite(record, op, time.Since(start), err)
	if err != nil {
		s.logger.Warn().Err(err).Str("record", record).Str("op", op).Msg("Preference save failed, keeping in-memory change")
		return fmt.Errorf("%w (%s): %w", ErrPersist, record, err)
	}
	return nil
}

// ToggleFavorite flips membership of id and returns the new state.
func (s *Store) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	s.favMu.Lock()
	defer s.favMu.Unlock()
	on := toggle(s.favorites, id)
	return on, s.save(ctx, RecordFavorites, "toggle", sortedKeys(s.favorites))
}

// ToggleBlacklist flips membership of id and returns the new state.
func (s *Store) ToggleBlacklist(ctx context.Context, id string) (bool, error) {
	s.blMu.Lock()
	defer s.blMu.Unlock()
	on := toggle(s.blacklist, id)
	return on, s.save(ctx, RecordBlacklist, "toggle", sortedKeys(s.blacklist))
}

// IsFavorite reports favorite membership.
func (s *Store) IsFavorite(id string) bool {
	s.favMu.RLock()
	defer s.favMu.RUnlock()
	_, ok := s.favorites[id]
	return ok
}

// IsBlacklisted reports blacklist membership.
func (s *Store) IsBlacklisted(id string) bool {
	s.blMu.RLock()
	defer s.blMu.RUnlock()
	_, ok := s.blacklist[id]
	return ok
}

// Favorites returns the favorite ids, sorted.
func (s *Store) Favorites() []string {
	s.favMu.RLock()
	defer s.favMu.RUnlock()
	return sortedKeys(s.favorites)
}

// Blacklist returns the blacklisted ids, sorted.
func (s *Store) Blacklist() []string {
	s.blMu.RLock()
	defer s.blMu.RUnlock()
	return sortedKeys(s.blacklist)
}

// FavoriteSet returns a private copy of the favorite set.
func (s *Store) FavoriteSet() map[string]struct{} {
	s.favMu.RLock()
	defer s.favMu.RUnlock()
	return copySet(s.favorites)
}

// BlacklistSet returns a private copy of the blacklist set.
func (s *Store) BlacklistSet() map[string]struct{} {
	s.blMu.RLock()
	defer s.blMu.RUnlock()
	return copySet(s.blacklist)
}

// AddHistory prepends a snapshot of cat and trims history to MaxHistory.
// Repeated picks are kept. An empty timeOfDay is derived from the clock.
func (s *Store) AddHistory(ctx context.Context, cat catalog.Category, timeOfDay clock.TimeOfDay) (Entry, error) {
	now := s.clock.Now()
	if timeOfDay == "" {
		timeOfDay = clock.Of(now)
	}
	e := Entry{
		ID:        s.newID(),
		Category:  cat.Clone(),
		Timestamp: now,
		TimeOfDay: timeOfDay,
	}

	s.histMu.Lock()
	defer s.histMu.Unlock()
	next := make([]Entry, 0, min(len(s.history)+1, MaxHistory))
	next = append(next, e)
	for _, old := range s.history {
		if len(next) == MaxHistory {
			break
		}
		next = append(next, old)
	}
	s.history = next
	return e, s.save(ctx, RecordHistory, "add", s.history)
}

// RemoveHistory deletes the entry with entryID. Unknown ids are a no-op and
// do not touch the persister.
func (s *Store) RemoveHistory(ctx context.Context, entryID string) error {
	s.histMu.Lock()
	defer s.histMu.Unlock()
	idx := -1
	for i, e := range s.history {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	next := make([]Entry, 0, len(s.history)-1)
	next = append(next, s.history[:idx]...)
	next = append(next, s.history[idx+1:]...)
	s.history = next
	return s.save(ctx, RecordHistory, "remove", s.history)
}

// ClearHistory empties the history.
func (s *Store) ClearHistory(ctx context.Context) error {
	s.histMu.Lock()
	defer s.histMu.Unlock()
	s.history = []Entry{}
	return s.save(ctx, RecordHistory, "clear", s.history)
}

// History returns a copy of the entries, newest first.
func (s *Store) History() []Entry {
	s.histMu.RLock()
	defer s.histMu.RUnlock()
	out := make([]Entry, len(s.history))
	copy(out, s.history)
	return out
}

// Stats counts picks per category, most picked first. Equal counts are
// ordered by whichever category was picked more recently.
func (s *Store) Stats() []StatEntry {
	s.histMu.RLock()
	defer s.histMu.RUnlock()

	index := make(map[string]int)
	var stats []StatEntry
	var firstSeen []int
	for i, e := range s.history {
		j, ok := index[e.Category.ID]
		if !ok {
			j = len(stats)
			index[e.Category.ID] = j
			stats = append(stats, StatEntry{
				CategoryID: e.Category.ID,
				Name:       e.Category.Name,
				Icon:       e.Category.Icon,
				LastPicked: e.Timestamp,
			})
			firstSeen = append(firstSeen, i)
		}
		stats[j].Count++
	}

	order := make([]int, len(stats))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		x, y := order[a], order[b]
		if stats[x].Count != stats[y].Count {
			return stats[x].Count > stats[y].Count
		}
		// history is newest first, so the first index a category appears
		// at is its LastPicked rank. Equal timestamps still order by pick.
		if firstSeen[x] != firstSeen[y] {
			return firstSeen[x] < firstSeen[y]
		}
		return stats[x].CategoryID < stats[y].CategoryID
	})

	out := make([]StatEntry, len(order))
	for i, j := range order {
		out[i] = stats[j]
	}
	return out
}

func toggle(set map[string]struct{}, id string) bool {
	if _, ok := set[id]; ok {
		delete(set, id)
		return false
	}
	set[id] = struct{}{}
	return true
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func copySet(set map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(set))
	for k := range set {
		out[k] = struct{}{}
	}
	return out
}

func addAll(set map[string]struct{}, ids []string) {
	for _, id := range ids {
		set[id] = struct{}{}
	}
}
