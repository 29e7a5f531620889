package seasons

import (
	"fmt"
	"time"
)

// Boundaries holds the five ordered dates delimiting one sport-year season,
// plus a display name and the upstream API base for that season. Dates are
// UTC midnights; the value is treated as immutable once stored.
type Boundaries struct {
	Name               string    `json:"name"`
	PreSeasonStart     time.Time `json:"pre_season_start"`
	RegularSeasonStart time.Time `json:"regular_season_start"`
	RegularSeasonEnd   time.Time `json:"regular_season_end"`
	PlayoffsStart      time.Time `json:"playoffs_start"`
	PlayoffsEnd        time.Time `json:"playoffs_end"`
	APIBase            string    `json:"api_base"`
}

// Validate checks the boundary ordering invariant:
// pre_season_start <= regular_season_start <= regular_season_end <= playoffs_start <= playoffs_end.
func (b Boundaries) Validate() error {
	ordered := []struct {
		name string
		at   time.Time
	}{
		{"pre_season_start", b.PreSeasonStart},
		{"regular_season_start", b.RegularSeasonStart},
		{"regular_season_end", b.RegularSeasonEnd},
		{"playoffs_start", b.PlayoffsStart},
		{"playoffs_end", b.PlayoffsEnd},
	}
	for _, d := range ordered {
		if d.at.IsZero() {
			return fmt.Errorf("%w: %s missing", ErrInvalidDateRange, d.name)
		}
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].at.Before(ordered[i-1].at) {
			return fmt.Errorf("%w: %s before %s", ErrInvalidDateRange, ordered[i].name, ordered[i-1].name)
		}
	}
	return nil
}

// Contains reports whether the date falls inside [PreSeasonStart, PlayoffsEnd],
// inclusive on both ends.
func (b Boundaries) Contains(date time.Time) bool {
	return !date.Before(b.PreSeasonStart) && !date.After(b.PlayoffsEnd)
}
