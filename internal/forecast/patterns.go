package forecast

import "time"

// monthDay is a recurring calendar point within a season pattern.
type monthDay struct {
	Month time.Month
	Day   int
}

// pattern captures the typical boundary dates for one sport's season.
// CrossYear marks sports whose season spans a calendar-year boundary; their
// pattern dates with month < July belong to the following year.
type pattern struct {
	PreSeasonStart     monthDay
	RegularSeasonStart monthDay
	RegularSeasonEnd   monthDay
	PlayoffsStart      monthDay
	PlayoffsEnd        monthDay
	SeasonLengthDays   int
	CrossYear          bool
}

var patterns = map[string]pattern{
	"wnba": {
		PreSeasonStart:     monthDay{time.May, 2},
		RegularSeasonStart: monthDay{time.May, 16},
		RegularSeasonEnd:   monthDay{time.September, 11},
		PlayoffsStart:      monthDay{time.September, 14},
		PlayoffsEnd:        monthDay{time.October, 19},
		SeasonLengthDays:   170,
	},
	"nba": {
		PreSeasonStart:     monthDay{time.October, 1},
		RegularSeasonStart: monthDay{time.October, 21},
		RegularSeasonEnd:   monthDay{time.April, 13},
		PlayoffsStart:      monthDay{time.April, 19},
		PlayoffsEnd:        monthDay{time.June, 23},
		SeasonLengthDays:   265,
		CrossYear:          true,
	},
	"nhl": {
		PreSeasonStart:     monthDay{time.September, 15},
		RegularSeasonStart: monthDay{time.October, 7},
		RegularSeasonEnd:   monthDay{time.April, 19},
		PlayoffsStart:      monthDay{time.April, 23},
		PlayoffsEnd:        monthDay{time.June, 15},
		SeasonLengthDays:   275,
		CrossYear:          true,
	},
	"mlb": {
		PreSeasonStart:     monthDay{time.February, 15},
		RegularSeasonStart: monthDay{time.March, 27},
		RegularSeasonEnd:   monthDay{time.September, 28},
		PlayoffsStart:      monthDay{time.October, 1},
		PlayoffsEnd:        monthDay{time.November, 5},
		SeasonLengthDays:   265,
	},
	"nfl": {
		PreSeasonStart:     monthDay{time.August, 7},
		RegularSeasonStart: monthDay{time.September, 4},
		RegularSeasonEnd:   monthDay{time.January, 5},
		PlayoffsStart:      monthDay{time.January, 11},
		PlayoffsEnd:        monthDay{time.February, 8},
		SeasonLengthDays:   185,
		CrossYear:          true,
	},
}

// resolve places a pattern date into an absolute year, rolling early-year
// dates of cross-year seasons into year+1.
func (p pattern) resolve(md monthDay, year int) time.Time {
	y := year
	if p.CrossYear && md.Month < time.July {
		y = year + 1
	}
	return time.Date(y, md.Month, md.Day, 0, 0, 0, 0, time.UTC)
}
