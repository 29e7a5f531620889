package seasons

import (
	"time"

	domainseasons "season-service/internal/domain/seasons"
	"season-service/internal/timeutil"
)

// ProgressReport summarizes how far a season has advanced at a date.
type ProgressReport struct {
	Sport          string                 `json:"sport"`
	SeasonID       string                 `json:"season_year"`
	SeasonName     string                 `json:"season_name"`
	CurrentPhase   domainseasons.Phase    `json:"current_phase"`
	CurrentWeek    int                    `json:"current_week,omitempty"`
	OverallPercent float64                `json:"overall_progress"`
	PhaseProgress  domainseasons.Progress `json:"phase_progress"`
	NextPhase      domainseasons.Phase    `json:"next_phase"`
	NextPhaseStart string                 `json:"next_phase_start"`
	DaysUntilNext  int                    `json:"days_until_next_phase"`
	DaysElapsed    int                    `json:"days_elapsed"`
	TotalDays      int                    `json:"total_days"`
	DaysRemaining  int                    `json:"days_remaining"`
}

// SeasonProgress computes overall and phase-level progress for a season at a
// date. An empty seasonID selects the current season.
func (s *Service) SeasonProgress(sport, seasonID string, on time.Time) (ProgressReport, error) {
	date := s.today(on)
	info, err := s.SeasonInfo(sport, seasonID, date)
	if err != nil {
		return ProgressReport{}, err
	}
	b := info.Boundaries

	total := timeutil.DaysBetween(b.PreSeasonStart, b.PlayoffsEnd)
	elapsed := timeutil.DaysBetween(b.PreSeasonStart, date)
	overall := 0.0
	if total > 0 {
		overall = float64(elapsed) / float64(total) * 100
		if overall < 0 {
			overall = 0
		}
		if overall > 100 {
			overall = 100
		}
	}

	return ProgressReport{
		Sport:          sport,
		SeasonID:       info.SeasonID,
		SeasonName:     info.Name,
		CurrentPhase:   info.Phase,
		CurrentWeek:    info.Week,
		OverallPercent: overall,
		PhaseProgress:  domainseasons.PhaseProgress(b, info.Phase, date),
		NextPhase:      domainseasons.NextPhase(info.Phase),
		NextPhaseStart: timeutil.FormatDate(domainseasons.NextPhaseStart(b, info.Phase)),
		DaysUntilNext:  domainseasons.DaysUntilNextPhase(b, info.Phase, date),
		DaysElapsed:    elapsed,
		TotalDays:      total,
		DaysRemaining:  total - elapsed,
	}, nil
}

// SeasonComparison reports progress for every recorded season of a sport.
// Per-season failures are captured as messages instead of aborting the rest.
type SeasonComparison struct {
	Reports map[string]ProgressReport `json:"reports"`
	Errors  map[string]string         `json:"errors,omitempty"`
}

func (s *Service) CompareSeasons(sport string, on time.Time) SeasonComparison {
	out := SeasonComparison{
		Reports: make(map[string]ProgressReport),
		Errors:  make(map[string]string),
	}
	for _, id := range s.table.Seasons(sport) {
		report, err := s.SeasonProgress(sport, id, on)
		if err != nil {
			out.Errors[id] = err.Error()
			continue
		}
		out.Reports[id] = report
	}
	return out
}

// CrossSportAnalysis reports current-season progress for every sport in the
// table. One sport's failure never hides the others.
func (s *Service) CrossSportAnalysis(on time.Time) SeasonComparison {
	out := SeasonComparison{
		Reports: make(map[string]ProgressReport),
		Errors:  make(map[string]string),
	}
	for _, sport := range s.table.Sports() {
		report, err := s.SeasonProgress(sport, "", on)
		if err != nil {
			out.Errors[sport] = err.Error()
			continue
		}
		out.Reports[sport] = report
	}
	return out
}
