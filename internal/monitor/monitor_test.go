package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"season-service/internal/domain/seasons"
	"season-service/internal/metrics"
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

func wnbaOnlyTable(t *testing.T) *seasontable.Table {
	t.Helper()
	return seasontable.NewWithSeasons(map[string]map[string]seasons.Boundaries{
		"wnba": {
			"2025": {
				Name:               "WNBA 2025",
				PreSeasonStart:     mustDate(t, "2025-05-02"),
				RegularSeasonStart: mustDate(t, "2025-05-16"),
				RegularSeasonEnd:   mustDate(t, "2025-09-11"),
				PlayoffsStart:      mustDate(t, "2025-09-14"),
				PlayoffsEnd:        mustDate(t, "2025-10-19"),
			},
			"2026": {
				Name:               "WNBA 2026",
				PreSeasonStart:     mustDate(t, "2026-05-02"),
				RegularSeasonStart: mustDate(t, "2026-05-16"),
				RegularSeasonEnd:   mustDate(t, "2026-09-11"),
				PlayoffsStart:      mustDate(t, "2026-09-14"),
				PlayoffsEnd:        mustDate(t, "2026-10-19"),
			},
		},
	}, nil, nil)
}

// frozenClock is a controllable now() for the monitor.
type frozenClock struct {
	at time.Time
}

func (c *frozenClock) now() time.Time { return c.at }

func (c *frozenClock) set(t time.Time) { c.at = t }

func newTestMonitor(t *testing.T, clock *frozenClock) *Monitor {
	t.Helper()
	return New(wnbaOnlyTable(t), []string{"wnba"}, time.Minute, nil, WithNow(clock.now))
}

func TestFirstObservationRecordsBaseline(t *testing.T) {
	clock := &frozenClock{at: mustDate(t, "2025-06-01")}
	m := newTestMonitor(t, clock)

	events := m.DetectTransitions(context.Background())
	if len(events) != 0 {
		t.Fatalf("first observation must emit nothing, got %v", events)
	}

	states := m.LastStates()
	snap, ok := states["wnba"]
	if !ok {
		t.Fatalf("baseline not recorded")
	}
	if snap.SeasonID != "2025" || snap.Phase != seasons.PhaseRegularSeason || snap.Week != 3 {
		t.Fatalf("unexpected baseline %+v", snap)
	}
}

func TestNoChangeNoEvents(t *testing.T) {
	clock := &frozenClock{at: mustDate(t, "2025-06-01")}
	m := newTestMonitor(t, clock)

	m.DetectTransitions(context.Background())
	if events := m.DetectTransitions(context.Background()); len(events) != 0 {
		t.Fatalf("frozen date must not emit events, got %v", events)
	}
}

func TestDayAdvanceWithinWeekNoEvents(t *testing.T) {
	clock := &frozenClock{at: mustDate(t, "2025-06-01")}
	m := newTestMonitor(t, clock)
	m.DetectTransitions(context.Background())

	clock.set(mustDate(t, "2025-06-02"))
	if events := m.DetectTransitions(context.Background()); len(events) != 0 {
		t.Fatalf("same week must not emit events, got %v", events)
	}
}

func TestPhaseChangeEmitted(t *testing.T) {
	clock := &frozenClock{at: mustDate(t, "2025-09-10")}
	m := newTestMonitor(t, clock)
	m.DetectTransitions(context.Background())

	clock.set(mustDate(t, "2025-09-12"))
	events := m.DetectTransitions(context.Background())
	if len(events) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(events))
	}
	ev := events[0]
	if ev.Kind != KindPhaseChange {
		t.Fatalf("expected phase change, got %s", ev.Kind)
	}
	if ev.From != string(seasons.PhaseRegularSeason) || ev.To != string(seasons.PhasePlayoffs) {
		t.Fatalf("unexpected phase transition %s -> %s", ev.From, ev.To)
	}
	if ev.Season != "2025" {
		t.Fatalf("phase change should carry season context, got %q", ev.Season)
	}
}

func TestWeekChangeEmitted(t *testing.T) {
	clock := &frozenClock{at: mustDate(t, "2025-06-01")} // regular season week 3
	m := newTestMonitor(t, clock)
	m.DetectTransitions(context.Background())

	clock.set(mustDate(t, "2025-06-08")) // week 4
	events := m.DetectTransitions(context.Background())
	if len(events) != 1 || events[0].Kind != KindWeekChange {
		t.Fatalf("expected one week change, got %v", events)
	}
	if events[0].From != "3" || events[0].To != "4" {
		t.Fatalf("unexpected week transition %s -> %s", events[0].From, events[0].To)
	}
	if events[0].Phase != string(seasons.PhaseRegularSeason) {
		t.Fatalf("week change should carry phase context")
	}
}

func TestSeasonChangeSuppressesPhaseChange(t *testing.T) {
	// Playoffs 2025 to pre-season 2026: both season and phase differ, but a
	// season change wins the priority order.
	clock := &frozenClock{at: mustDate(t, "2025-10-01")}
	m := newTestMonitor(t, clock)
	m.DetectTransitions(context.Background())

	clock.set(mustDate(t, "2026-05-03"))
	events := m.DetectTransitions(context.Background())
	if len(events) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(events))
	}
	if events[0].Kind != KindSeasonChange {
		t.Fatalf("expected season change to take priority, got %s", events[0].Kind)
	}
	if events[0].From != "2025" || events[0].To != "2026" {
		t.Fatalf("unexpected season transition %s -> %s", events[0].From, events[0].To)
	}
}

func TestWeekToOffSeasonNotReportedAsWeekChange(t *testing.T) {
	// Playoffs end to off-season within the same selected season: phase
	// change fires, and the vanished week number is never reported alone.
	clock := &frozenClock{at: mustDate(t, "2025-10-19")}
	m := newTestMonitor(t, clock)
	m.DetectTransitions(context.Background())

	clock.set(mustDate(t, "2025-10-20"))
	events := m.DetectTransitions(context.Background())
	if len(events) != 1 || events[0].Kind != KindPhaseChange {
		t.Fatalf("expected a phase change into off-season, got %v", events)
	}
	if events[0].To != string(seasons.PhaseOffSeason) {
		t.Fatalf("unexpected target phase %s", events[0].To)
	}
}

func TestErrorSportIsIsolated(t *testing.T) {
	table := wnbaOnlyTable(t)
	clock := &frozenClock{at: mustDate(t, "2025-06-01")}
	// "cricket" is not in the table; wnba must still be observed.
	m := New(table, []string{"cricket", "wnba"}, time.Minute, nil, WithNow(clock.now))

	events := m.DetectTransitions(context.Background())
	if len(events) != 0 {
		t.Fatalf("baseline cycle must emit nothing, got %v", events)
	}
	states := m.LastStates()
	if _, ok := states["wnba"]; !ok {
		t.Fatalf("healthy sport must be tracked despite the failing one")
	}
	if _, ok := states["cricket"]; ok {
		t.Fatalf("failing sport must not produce a usable snapshot")
	}

	clock.set(mustDate(t, "2025-06-08"))
	events = m.DetectTransitions(context.Background())
	if len(events) != 1 || events[0].Sport != "wnba" {
		t.Fatalf("expected one wnba event, got %v", events)
	}
}

func TestSinkFailureDoesNotStopOthers(t *testing.T) {
	clock := &frozenClock{at: mustDate(t, "2025-06-01")}
	m := newTestMonitor(t, clock)

	var calls []string
	m.AddSink(SinkFunc{SinkName: "bad", Fn: func(context.Context, Event) error {
		calls = append(calls, "bad")
		return errors.New("sink exploded")
	}})
	m.AddSink(SinkFunc{SinkName: "good", Fn: func(context.Context, Event) error {
		calls = append(calls, "good")
		return nil
	}})

	m.DetectTransitions(context.Background())
	clock.set(mustDate(t, "2025-06-08"))
	events := m.DetectTransitions(context.Background())
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if len(calls) != 2 || calls[0] != "bad" || calls[1] != "good" {
		t.Fatalf("sinks must run in registration order despite failure, got %v", calls)
	}
}

func TestHistoryBounded(t *testing.T) {
	clock := &frozenClock{at: mustDate(t, "2025-05-16")}
	m := New(wnbaOnlyTable(t), []string{"wnba"}, time.Minute, nil,
		WithNow(clock.now), WithHistoryLimit(3))

	m.DetectTransitions(context.Background())
	// Advance week by week through the regular season to generate events.
	for week := 1; week <= 6; week++ {
		clock.set(mustDate(t, "2025-05-16").AddDate(0, 0, week*7))
		m.DetectTransitions(context.Background())
	}

	events := m.History(0)
	if len(events) != 3 {
		t.Fatalf("expected history capped at 3, got %d", len(events))
	}
	// Oldest entries were evicted; the newest survives.
	if events[len(events)-1].To != "7" {
		t.Fatalf("unexpected newest event %+v", events[len(events)-1])
	}
}

func TestMetricsRecorded(t *testing.T) {
	clock := &frozenClock{at: mustDate(t, "2025-06-01")}
	rec := metrics.NewRecorder()
	m := New(wnbaOnlyTable(t), []string{"wnba"}, time.Minute, nil,
		WithNow(clock.now), WithMetrics(rec))

	m.DetectTransitions(context.Background())
	clock.set(mustDate(t, "2025-06-08"))
	m.DetectTransitions(context.Background())

	if got := rec.MonitorCycles(); got != 2 {
		t.Fatalf("expected 2 cycles recorded, got %d", got)
	}
	if got := rec.Transitions(string(KindWeekChange)); got != 1 {
		t.Fatalf("expected 1 week change recorded, got %d", got)
	}
}

func TestRunStopsAfterDuration(t *testing.T) {
	clock := &frozenClock{at: mustDate(t, "2025-06-01")}
	m := New(wnbaOnlyTable(t), []string{"wnba"}, 10*time.Millisecond, nil, WithNow(clock.now))

	done := make(chan struct{})
	go func() {
		m.Run(context.Background(), 50*time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop after its duration")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	clock := &frozenClock{at: mustDate(t, "2025-06-01")}
	m := newTestMonitor(t, clock)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)
	if err := m.Stop(ctx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if err := m.Stop(ctx); err != nil {
		t.Fatalf("second stop failed: %v", err)
	}
}
