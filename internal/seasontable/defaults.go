package seasontable

import (
	"time"

	"season-service/internal/domain/seasons"
	"season-service/internal/timeutil"
)

// SupportedSports returns the sports shipped in the default table, sorted.
func SupportedSports() []string {
	return []string{"mlb", "nba", "nfl", "nhl", "wnba"}
}

func date(value string) time.Time {
	parsed, err := timeutil.ParseDate(value)
	if err != nil {
		panic("seasontable: bad default date " + value)
	}
	return parsed
}

func apiBase(sport string) string {
	return "https://api.sportsblaze.com/v1/" + sport
}

// defaultSeasons returns the built-in season table used when no persisted
// document exists or it cannot be read.
func defaultSeasons() map[string]map[string]seasons.Boundaries {
	return map[string]map[string]seasons.Boundaries{
		"wnba": {
			"2025": {
				Name:               "WNBA 2025",
				PreSeasonStart:     date("2025-05-02"),
				RegularSeasonStart: date("2025-05-16"),
				RegularSeasonEnd:   date("2025-09-11"),
				PlayoffsStart:      date("2025-09-14"),
				PlayoffsEnd:        date("2025-10-19"),
				APIBase:            apiBase("wnba"),
			},
			"2026": {
				Name:               "WNBA 2026",
				PreSeasonStart:     date("2026-05-02"),
				RegularSeasonStart: date("2026-05-16"),
				RegularSeasonEnd:   date("2026-09-11"),
				PlayoffsStart:      date("2026-09-14"),
				PlayoffsEnd:        date("2026-10-19"),
				APIBase:            apiBase("wnba"),
			},
		},
		"nba": {
			"2025": {
				Name:               "NBA 2025-26",
				PreSeasonStart:     date("2025-10-01"),
				RegularSeasonStart: date("2025-10-21"),
				RegularSeasonEnd:   date("2026-04-13"),
				PlayoffsStart:      date("2026-04-19"),
				PlayoffsEnd:        date("2026-06-23"),
				APIBase:            apiBase("nba"),
			},
			"2026": {
				Name:               "NBA 2026-27",
				PreSeasonStart:     date("2026-10-01"),
				RegularSeasonStart: date("2026-10-21"),
				RegularSeasonEnd:   date("2027-04-13"),
				PlayoffsStart:      date("2027-04-19"),
				PlayoffsEnd:        date("2027-06-23"),
				APIBase:            apiBase("nba"),
			},
		},
		"nhl": {
			"2025": {
				Name:               "NHL 2025-26",
				PreSeasonStart:     date("2025-09-15"),
				RegularSeasonStart: date("2025-10-07"),
				RegularSeasonEnd:   date("2026-04-19"),
				PlayoffsStart:      date("2026-04-23"),
				PlayoffsEnd:        date("2026-06-15"),
				APIBase:            apiBase("nhl"),
			},
			"2026": {
				Name:               "NHL 2026-27",
				PreSeasonStart:     date("2026-09-15"),
				RegularSeasonStart: date("2026-10-07"),
				RegularSeasonEnd:   date("2027-04-19"),
				PlayoffsStart:      date("2027-04-23"),
				PlayoffsEnd:        date("2027-06-15"),
				APIBase:            apiBase("nhl"),
			},
		},
		"mlb": {
			"2025": {
				Name:               "MLB 2025",
				PreSeasonStart:     date("2025-02-15"),
				RegularSeasonStart: date("2025-03-27"),
				RegularSeasonEnd:   date("2025-09-28"),
				PlayoffsStart:      date("2025-10-01"),
				PlayoffsEnd:        date("2025-11-05"),
				APIBase:            apiBase("mlb"),
			},
			"2026": {
				Name:               "MLB 2026",
				PreSeasonStart:     date("2026-02-15"),
				RegularSeasonStart: date("2026-03-27"),
				RegularSeasonEnd:   date("2026-09-28"),
				PlayoffsStart:      date("2026-10-01"),
				PlayoffsEnd:        date("2026-11-05"),
				APIBase:            apiBase("mlb"),
			},
		},
		"nfl": {
			"2025": {
				Name:               "NFL 2025-26",
				PreSeasonStart:     date("2025-08-07"),
				RegularSeasonStart: date("2025-09-04"),
				RegularSeasonEnd:   date("2026-01-05"),
				PlayoffsStart:      date("2026-01-11"),
				PlayoffsEnd:        date("2026-02-08"),
				APIBase:            apiBase("nfl"),
			},
			"2026": {
				Name:               "NFL 2026-27",
				PreSeasonStart:     date("2026-08-07"),
				RegularSeasonStart: date("2026-09-04"),
				RegularSeasonEnd:   date("2027-01-05"),
				PlayoffsStart:      date("2027-01-11"),
				PlayoffsEnd:        date("2027-02-08"),
				APIBase:            apiBase("nfl"),
			},
		},
	}
}
