package seasons

import (
	"errors"
	"math"
	"testing"
	"time"

	domainseasons "season-service/internal/domain/seasons"
	"season-service/internal/seasontable"
	"season-service/internal/timeutil"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := timeutil.ParseDate(value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return parsed
}

func wnbaBoundaries(t *testing.T, year string) domainseasons.Boundaries {
	t.Helper()
	return domainseasons.Boundaries{
		Name:               "WNBA " + year,
		PreSeasonStart:     mustDate(t, year+"-05-02"),
		RegularSeasonStart: mustDate(t, year+"-05-16"),
		RegularSeasonEnd:   mustDate(t, year+"-09-11"),
		PlayoffsStart:      mustDate(t, year+"-09-14"),
		PlayoffsEnd:        mustDate(t, year+"-10-19"),
	}
}

func testService(t *testing.T) *Service {
	t.Helper()
	table := seasontable.NewWithSeasons(map[string]map[string]domainseasons.Boundaries{
		"wnba": {
			"2025": wnbaBoundaries(t, "2025"),
			"2026": wnbaBoundaries(t, "2026"),
		},
	}, nil, nil)
	return NewService(table)
}

func TestSeasonInfoCurrent(t *testing.T) {
	svc := testService(t)

	info, err := svc.SeasonInfo("wnba", "", mustDate(t, "2025-06-01"))
	if err != nil {
		t.Fatalf("SeasonInfo: %v", err)
	}
	if info.SeasonID != "2025" {
		t.Fatalf("season id = %q, want 2025", info.SeasonID)
	}
	if info.Phase != domainseasons.PhaseRegularSeason {
		t.Fatalf("phase = %q, want regular season", info.Phase)
	}
	if info.Week != 3 {
		t.Fatalf("week = %d, want 3", info.Week)
	}
	if info.Name != "WNBA 2025" {
		t.Fatalf("name = %q", info.Name)
	}
}

func TestSeasonInfoExplicitSeason(t *testing.T) {
	svc := testService(t)

	info, err := svc.SeasonInfo("wnba", "2026", mustDate(t, "2025-06-01"))
	if err != nil {
		t.Fatalf("SeasonInfo: %v", err)
	}
	if info.Phase != domainseasons.PhaseOffSeason {
		t.Fatalf("phase = %q, want off season", info.Phase)
	}
	if info.Week != 0 {
		t.Fatalf("week = %d, want 0", info.Week)
	}
}

func TestSeasonInfoUnknownSport(t *testing.T) {
	svc := testService(t)

	if _, err := svc.SeasonInfo("cricket", "", mustDate(t, "2025-06-01")); !errors.Is(err, domainseasons.ErrUnknownSport) {
		t.Fatalf("err = %v, want ErrUnknownSport", err)
	}
}

func TestSeasonInfoUnknownSeason(t *testing.T) {
	svc := testService(t)

	if _, err := svc.SeasonInfo("wnba", "1999", mustDate(t, "2025-06-01")); !errors.Is(err, domainseasons.ErrUnknownSeason) {
		t.Fatalf("err = %v, want ErrUnknownSeason", err)
	}
}

func TestSeasonTransitionInfo(t *testing.T) {
	svc := testService(t)

	info, err := svc.SeasonTransitionInfo("wnba", mustDate(t, "2025-06-01"))
	if err != nil {
		t.Fatalf("SeasonTransitionInfo: %v", err)
	}
	if info.CurrentSeason != "2025" {
		t.Fatalf("current = %q, want 2025", info.CurrentSeason)
	}
	if info.NextSeason != "2026" {
		t.Fatalf("next = %q, want 2026", info.NextSeason)
	}
	if info.NextInfo == nil || info.NextInfo.Name != "WNBA 2026" {
		t.Fatalf("next info = %+v", info.NextInfo)
	}
	if len(info.AvailableSeasons) != 2 {
		t.Fatalf("available = %v", info.AvailableSeasons)
	}
}

func TestSeasonTransitionInfoNoNextSeason(t *testing.T) {
	svc := testService(t)

	info, err := svc.SeasonTransitionInfo("wnba", mustDate(t, "2026-06-01"))
	if err != nil {
		t.Fatalf("SeasonTransitionInfo: %v", err)
	}
	if info.CurrentSeason != "2026" {
		t.Fatalf("current = %q, want 2026", info.CurrentSeason)
	}
	if info.NextSeason != "" || info.NextInfo != nil {
		t.Fatalf("next = %q %+v, want none", info.NextSeason, info.NextInfo)
	}
}

func TestSeasonProgress(t *testing.T) {
	svc := testService(t)

	report, err := svc.SeasonProgress("wnba", "", mustDate(t, "2025-06-01"))
	if err != nil {
		t.Fatalf("SeasonProgress: %v", err)
	}
	// 2025-05-02 through 2025-10-19 is 170 days, 30 of them elapsed.
	if report.TotalDays != 170 {
		t.Fatalf("total days = %d, want 170", report.TotalDays)
	}
	if report.DaysElapsed != 30 {
		t.Fatalf("days elapsed = %d, want 30", report.DaysElapsed)
	}
	if want := 30.0 / 170.0 * 100; math.Abs(report.OverallPercent-want) > 1e-9 {
		t.Fatalf("overall = %f, want %f", report.OverallPercent, want)
	}
	if report.NextPhase != domainseasons.PhasePlayoffs {
		t.Fatalf("next phase = %q, want playoffs", report.NextPhase)
	}
	if report.NextPhaseStart != "2025-09-14" {
		t.Fatalf("next phase start = %q", report.NextPhaseStart)
	}
	if report.DaysUntilNext != 105 {
		t.Fatalf("days until next = %d, want 105", report.DaysUntilNext)
	}
	if report.PhaseProgress.DaysElapsed != 16 {
		t.Fatalf("phase days elapsed = %d, want 16", report.PhaseProgress.DaysElapsed)
	}
}

func TestSeasonProgressClampedBeforeStart(t *testing.T) {
	svc := testService(t)

	report, err := svc.SeasonProgress("wnba", "2025", mustDate(t, "2025-04-01"))
	if err != nil {
		t.Fatalf("SeasonProgress: %v", err)
	}
	if report.OverallPercent != 0 {
		t.Fatalf("overall = %f, want 0", report.OverallPercent)
	}
	if report.CurrentPhase != domainseasons.PhaseOffSeason {
		t.Fatalf("phase = %q, want off season", report.CurrentPhase)
	}
}

func TestCompareSeasons(t *testing.T) {
	svc := testService(t)

	cmp := svc.CompareSeasons("wnba", mustDate(t, "2025-06-01"))
	if len(cmp.Reports) != 2 {
		t.Fatalf("reports = %d, want 2", len(cmp.Reports))
	}
	if len(cmp.Errors) != 0 {
		t.Fatalf("errors = %v, want none", cmp.Errors)
	}
	if cmp.Reports["2025"].CurrentPhase != domainseasons.PhaseRegularSeason {
		t.Fatalf("2025 phase = %q", cmp.Reports["2025"].CurrentPhase)
	}
	if cmp.Reports["2026"].CurrentPhase != domainseasons.PhaseOffSeason {
		t.Fatalf("2026 phase = %q", cmp.Reports["2026"].CurrentPhase)
	}
}

func TestCrossSportAnalysisIsolatesFailures(t *testing.T) {
	table := seasontable.NewWithSeasons(map[string]map[string]domainseasons.Boundaries{
		"wnba": {
			"2025": wnbaBoundaries(t, "2025"),
		},
		"cricket": {},
	}, nil, nil)
	svc := NewService(table)

	out := svc.CrossSportAnalysis(mustDate(t, "2025-06-01"))
	if _, ok := out.Reports["wnba"]; !ok {
		t.Fatalf("missing wnba report: %+v", out)
	}
	if _, ok := out.Errors["cricket"]; !ok {
		t.Fatalf("expected cricket error, got %+v", out.Errors)
	}
}

func TestAddAndUpdateSeason(t *testing.T) {
	svc := testService(t)

	b := wnbaBoundaries(t, "2027")
	if err := svc.AddSeason("wnba", "2027", b); err != nil {
		t.Fatalf("AddSeason: %v", err)
	}
	name := "WNBA 2027 (revised)"
	if err := svc.UpdateSeason("wnba", "2027", seasontable.Partial{Name: &name}); err != nil {
		t.Fatalf("UpdateSeason: %v", err)
	}
	info, err := svc.SeasonInfo("wnba", "2027", mustDate(t, "2025-06-01"))
	if err != nil {
		t.Fatalf("SeasonInfo: %v", err)
	}
	if info.Name != name {
		t.Fatalf("name = %q, want %q", info.Name, name)
	}
	if got := svc.AvailableSeasons("wnba"); len(got) != 3 {
		t.Fatalf("seasons = %v, want 3", got)
	}
}
