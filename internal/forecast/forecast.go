package forecast

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"season-service/internal/domain/seasons"
	"season-service/internal/logging"
	"season-service/internal/seasontable"
	"season-service/internal/timeutil"
)

// Forecaster projects season boundaries for years the table does not record
// yet, from the fixed per-sport historical patterns.
type Forecaster struct {
	table  *seasontable.Table
	logger *slog.Logger
}

// New constructs a Forecaster over the given table.
func New(table *seasontable.Table, logger *slog.Logger) *Forecaster {
	return &Forecaster{table: table, logger: logger}
}

// Prediction is one forecast season.
type Prediction struct {
	Sport      string             `json:"sport"`
	Year       int                `json:"year"`
	Boundaries seasons.Boundaries `json:"boundaries"`
}

// Predict produces absolute boundary dates for the requested year. Cross-year
// sports render their display name as "SPORT year-year+1".
func Predict(sport string, year int) (Prediction, error) {
	p, ok := patterns[sport]
	if !ok {
		return Prediction{}, fmt.Errorf("%w: %s", seasons.ErrUnknownSport, sport)
	}

	name := fmt.Sprintf("%s %d", strings.ToUpper(sport), year)
	if p.CrossYear {
		name = fmt.Sprintf("%s %d-%d", strings.ToUpper(sport), year, year+1)
	}

	return Prediction{
		Sport: sport,
		Year:  year,
		Boundaries: seasons.Boundaries{
			Name:               name,
			PreSeasonStart:     p.resolve(p.PreSeasonStart, year),
			RegularSeasonStart: p.resolve(p.RegularSeasonStart, year),
			RegularSeasonEnd:   p.resolve(p.RegularSeasonEnd, year),
			PlayoffsStart:      p.resolve(p.PlayoffsStart, year),
			PlayoffsEnd:        p.resolve(p.PlayoffsEnd, year),
			APIBase:            "https://api.sportsblaze.com/v1/" + sport,
		},
	}, nil
}

// RangeItem is one entry of a multi-year prediction; failed years carry their
// error instead of aborting the rest.
type RangeItem struct {
	Year       int
	Prediction Prediction
	Err        error
}

// PredictRange predicts count consecutive seasons starting at startYear.
func PredictRange(sport string, startYear, count int) []RangeItem {
	items := make([]RangeItem, 0, count)
	for i := 0; i < count; i++ {
		year := startYear + i
		pred, err := Predict(sport, year)
		items = append(items, RangeItem{Year: year, Prediction: pred, Err: err})
	}
	return items
}

// AutoExtend predicts count seasons beyond the latest recorded one and writes
// each successful prediction into the table. Per-year failures are logged and
// skipped. A sport with no recorded seasons cannot be extrapolated.
func (f *Forecaster) AutoExtend(sport string, count int) ([]Prediction, error) {
	existing := f.table.Seasons(sport)
	if len(existing) == 0 {
		return nil, fmt.Errorf("%w: no seasons recorded for %s", seasons.ErrInsufficientData, sport)
	}

	latest := 0
	for _, id := range existing {
		year, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if year > latest {
			latest = year
		}
	}
	if latest == 0 {
		return nil, fmt.Errorf("%w: no numeric season ids for %s", seasons.ErrInsufficientData, sport)
	}

	var added []Prediction
	for _, item := range PredictRange(sport, latest+1, count) {
		if item.Err != nil {
			logging.Warn(f.logger, "season prediction failed",
				logging.FieldSport, sport, "year", item.Year, "error", item.Err)
			continue
		}
		if err := f.table.Put(sport, strconv.Itoa(item.Year), item.Prediction.Boundaries); err != nil {
			logging.Warn(f.logger, "could not store predicted season",
				logging.FieldSport, sport, "year", item.Year, "error", err)
			continue
		}
		added = append(added, item.Prediction)
	}
	return added, nil
}

// Trends summarizes the spacing of recorded seasons for a sport.
type Trends struct {
	Sport           string  `json:"sport"`
	SeasonsAnalyzed int     `json:"seasons_analyzed"`
	AverageGapDays  float64 `json:"avg_days_between_seasons"`
	Consistency     string  `json:"season_consistency"`
}

// Trends computes the mean gap in days between consecutive seasons'
// pre-season starts. Consistency is "high" when the gaps vary by fewer than
// ten days, otherwise "medium". At least two seasons are required.
func (f *Forecaster) Trends(sport string) (Trends, error) {
	ids := f.table.Seasons(sport)
	if len(ids) < 2 {
		return Trends{}, fmt.Errorf("%w: need at least 2 seasons for trend analysis", seasons.ErrInsufficientData)
	}

	starts := make([]int, 0, len(ids)-1)
	var prev *seasons.Boundaries
	for _, id := range ids {
		b, err := f.table.Get(sport, id)
		if err != nil {
			continue
		}
		if prev != nil {
			starts = append(starts, timeutil.DaysBetween(prev.PreSeasonStart, b.PreSeasonStart))
		}
		bCopy := b
		prev = &bCopy
	}
	if len(starts) == 0 {
		return Trends{}, fmt.Errorf("%w: need at least 2 seasons for trend analysis", seasons.ErrInsufficientData)
	}

	sum, min, max := 0, starts[0], starts[0]
	for _, d := range starts {
		sum += d
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}

	consistency := "medium"
	if max-min < 10 {
		consistency = "high"
	}
	return Trends{
		Sport:           sport,
		SeasonsAnalyzed: len(ids),
		AverageGapDays:  float64(sum) / float64(len(starts)),
		Consistency:     consistency,
	}, nil
}

// KnownSports lists the sports with a prediction pattern, for callers that
// validate input before predicting.
func KnownSports() []string {
	out := make([]string, 0, len(patterns))
	for sport := range patterns {
		out = append(out, sport)
	}
	return out
}
