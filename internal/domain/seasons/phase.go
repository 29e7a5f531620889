package seasons

import (
	"time"

	"season-service/internal/timeutil"
)

// Phase classifies a date relative to a season's boundaries. Exactly one
// phase applies to any date.
type Phase string

const (
	PhaseOffSeason     Phase = "Off Season"
	PhasePreSeason     Phase = "Pre Season"
	PhaseRegularSeason Phase = "Regular Season"
	PhasePlayoffs      Phase = "Playoffs"
)

// Snapshot is the derived state of one sport at a point in time. It is
// recomputed on every query and never cached. Week is 0 outside phases that
// carry a week number.
type Snapshot struct {
	Sport    string `json:"sport"`
	SeasonID string `json:"season_id"`
	Phase    Phase  `json:"phase"`
	Week     int    `json:"week,omitempty"`
}

// Resolve determines the phase and week for a date against one season's
// boundaries. Intervals are evaluated in fixed order: before pre-season is
// off-season; [pre, regular) is pre-season; [regular, regularEnd] is regular
// season; (regularEnd, playoffsEnd] is playoffs; after that off-season again.
// Week is floor(days since phase start / 7) + 1, clamped to a minimum of 1 so
// the gap between regular-season end and playoff start still reports playoff
// week 1 rather than a non-positive week. Off-season has no week (0).
func Resolve(b Boundaries, date time.Time) (Phase, int) {
	switch {
	case date.Before(b.PreSeasonStart):
		return PhaseOffSeason, 0
	case date.Before(b.RegularSeasonStart):
		return PhasePreSeason, weekSince(b.PreSeasonStart, date)
	case !date.After(b.RegularSeasonEnd):
		return PhaseRegularSeason, weekSince(b.RegularSeasonStart, date)
	case !date.After(b.PlayoffsEnd):
		return PhasePlayoffs, weekSince(b.PlayoffsStart, date)
	default:
		return PhaseOffSeason, 0
	}
}

func weekSince(start, date time.Time) int {
	week := timeutil.DaysBetween(start, date)/7 + 1
	if week < 1 {
		return 1
	}
	return week
}

// NextPhase returns the phase that follows the given one in the season cycle.
func NextPhase(p Phase) Phase {
	switch p {
	case PhaseOffSeason:
		return PhasePreSeason
	case PhasePreSeason:
		return PhaseRegularSeason
	case PhaseRegularSeason:
		return PhasePlayoffs
	default:
		return PhaseOffSeason
	}
}

// NextPhaseStart returns the date the phase after current begins. For
// playoffs the next phase (off-season) begins at PlayoffsEnd.
func NextPhaseStart(b Boundaries, current Phase) time.Time {
	switch current {
	case PhaseOffSeason:
		return b.PreSeasonStart
	case PhasePreSeason:
		return b.RegularSeasonStart
	case PhaseRegularSeason:
		return b.PlayoffsStart
	default:
		return b.PlayoffsEnd
	}
}

// DaysUntilNextPhase returns the days from date until the next phase begins.
// The result is negative when the start has already passed.
func DaysUntilNextPhase(b Boundaries, current Phase, date time.Time) int {
	return timeutil.DaysBetween(date, NextPhaseStart(b, current))
}

// Progress describes how far through a phase a date is.
type Progress struct {
	Percentage    float64 `json:"percentage"`
	DaysElapsed   int     `json:"days_elapsed"`
	TotalDays     int     `json:"total_days"`
	DaysRemaining int     `json:"days_remaining"`
}

// PhaseProgress computes elapsed/remaining days and a 0-100 percentage for
// the current phase. Off-season and zero-length phases report zero progress
// without dividing.
func PhaseProgress(b Boundaries, current Phase, date time.Time) Progress {
	var start, end time.Time
	switch current {
	case PhasePreSeason:
		start, end = b.PreSeasonStart, b.RegularSeasonStart
	case PhaseRegularSeason:
		start, end = b.RegularSeasonStart, b.RegularSeasonEnd
	case PhasePlayoffs:
		start, end = b.PlayoffsStart, b.PlayoffsEnd
	default:
		return Progress{}
	}

	total := timeutil.DaysBetween(start, end)
	if total <= 0 {
		return Progress{}
	}
	elapsed := timeutil.DaysBetween(start, date)
	pct := float64(elapsed) / float64(total) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return Progress{
		Percentage:    pct,
		DaysElapsed:   elapsed,
		TotalDays:     total,
		DaysRemaining: total - elapsed,
	}
}
