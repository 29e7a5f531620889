package seasontable

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"season-service/internal/domain/seasons"
	"season-service/internal/logging"
)

// Table is the authoritative in-memory season table, keyed by sport then
// season id. Mutations rewrite the backing store synchronously; a persist
// failure is logged and the in-memory state stays authoritative for the
// process lifetime.
type Table struct {
	mu     sync.RWMutex
	store  Store
	logger *slog.Logger

	seasons map[string]map[string]seasons.Boundaries
}

// Open loads the table from the store, falling back to the built-in default
// table (and persisting it immediately) when the store is absent or
// unreadable.
func Open(store Store, logger *slog.Logger) *Table {
	t := &Table{store: store, logger: logger}

	if store != nil {
		loaded, err := store.Load()
		if err == nil {
			t.seasons = loaded
			return t
		}
		logging.Warn(logger, "could not load season table, using defaults", "error", err)
	}

	t.seasons = defaultSeasons()
	t.persistLocked()
	return t
}

// NewWithSeasons builds a table around a preloaded map. Used by tests and by
// callers that manage persistence themselves.
func NewWithSeasons(data map[string]map[string]seasons.Boundaries, store Store, logger *slog.Logger) *Table {
	if data == nil {
		data = make(map[string]map[string]seasons.Boundaries)
	}
	return &Table{store: store, logger: logger, seasons: data}
}

// Get returns the boundaries for one sport-season.
func (t *Table) Get(sport, seasonID string) (seasons.Boundaries, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	years, ok := t.seasons[sport]
	if !ok {
		return seasons.Boundaries{}, fmt.Errorf("%w: %s", seasons.ErrUnknownSport, sport)
	}
	b, ok := years[seasonID]
	if !ok {
		return seasons.Boundaries{}, fmt.Errorf("%w: %s for %s", seasons.ErrUnknownSeason, seasonID, sport)
	}
	return b, nil
}

// Seasons returns the sorted season ids known for a sport. Unknown sports
// yield an empty slice rather than an error.
func (t *Table) Seasons(sport string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	years := t.seasons[sport]
	out := make([]string, 0, len(years))
	for id := range years {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Sports returns the sorted sport identifiers present in the table.
func (t *Table) Sports() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]string, 0, len(t.seasons))
	for sport := range t.seasons {
		out = append(out, sport)
	}
	sort.Strings(out)
	return out
}

// HasSport reports whether the sport key exists in the table.
func (t *Table) HasSport(sport string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.seasons[sport]
	return ok
}

// Put inserts or overwrites a season and persists the table. The sport entry
// is created when absent. Boundaries are validated before anything mutates.
func (t *Table) Put(sport, seasonID string, b seasons.Boundaries) error {
	if err := b.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.seasons[sport] == nil {
		t.seasons[sport] = make(map[string]seasons.Boundaries)
	}
	t.seasons[sport][seasonID] = b
	t.persistLocked()
	return nil
}

// Partial carries optional replacement fields for Merge. Nil fields keep the
// existing value.
type Partial struct {
	Name               *string
	PreSeasonStart     *time.Time
	RegularSeasonStart *time.Time
	RegularSeasonEnd   *time.Time
	PlayoffsStart      *time.Time
	PlayoffsEnd        *time.Time
	APIBase            *string
}

// Merge overlays the provided fields onto an existing season and persists.
// The season must already exist.
func (t *Table) Merge(sport, seasonID string, patch Partial) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	years, ok := t.seasons[sport]
	if !ok {
		return fmt.Errorf("%w: %s", seasons.ErrUnknownSport, sport)
	}
	b, ok := years[seasonID]
	if !ok {
		return fmt.Errorf("%w: %s for %s", seasons.ErrUnknownSeason, seasonID, sport)
	}

	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.PreSeasonStart != nil {
		b.PreSeasonStart = *patch.PreSeasonStart
	}
	if patch.RegularSeasonStart != nil {
		b.RegularSeasonStart = *patch.RegularSeasonStart
	}
	if patch.RegularSeasonEnd != nil {
		b.RegularSeasonEnd = *patch.RegularSeasonEnd
	}
	if patch.PlayoffsStart != nil {
		b.PlayoffsStart = *patch.PlayoffsStart
	}
	if patch.PlayoffsEnd != nil {
		b.PlayoffsEnd = *patch.PlayoffsEnd
	}
	if patch.APIBase != nil {
		b.APIBase = *patch.APIBase
	}

	if err := b.Validate(); err != nil {
		return err
	}
	years[seasonID] = b
	t.persistLocked()
	return nil
}

// CurrentSeason picks the season whose range contains the date. When several
// overlap, the one with the latest pre-season start wins, tie-broken by the
// larger season id, so the result does not depend on map iteration order.
// Dates beyond every known season fall back to the maximum season id; a sport
// with no seasons at all falls back to the date's year.
func (t *Table) CurrentSeason(sport string, date time.Time) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	years, ok := t.seasons[sport]
	if !ok {
		return "", fmt.Errorf("%w: %s", seasons.ErrUnknownSport, sport)
	}

	best := ""
	var bestStart time.Time
	for id, b := range years {
		if !b.Contains(date) {
			continue
		}
		if best == "" || b.PreSeasonStart.After(bestStart) ||
			(b.PreSeasonStart.Equal(bestStart) && id > best) {
			best = id
			bestStart = b.PreSeasonStart
		}
	}
	if best != "" {
		return best, nil
	}

	// No containing season: most recent known season is treated as current.
	for id := range years {
		if id > best {
			best = id
		}
	}
	if best != "" {
		return best, nil
	}
	return strconv.Itoa(date.Year()), nil
}

// Snapshot returns a deep copy of the current table contents.
func (t *Table) Snapshot() map[string]map[string]seasons.Boundaries {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]map[string]seasons.Boundaries, len(t.seasons))
	for sport, years := range t.seasons {
		out[sport] = make(map[string]seasons.Boundaries, len(years))
		for id, b := range years {
			out[sport][id] = b
		}
	}
	return out
}

func (t *Table) persistLocked() {
	if t.store == nil {
		return
	}
	if err := t.store.Save(t.seasons); err != nil {
		logging.Warn(t.logger, "could not save season table", "error", err)
	}
}
