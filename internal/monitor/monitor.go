package monitor

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"season-service/internal/domain/seasons"
	"season-service/internal/history"
	"season-service/internal/logging"
	"season-service/internal/metrics"
	"season-service/internal/seasontable"
)

const (
	defaultInterval     = time.Hour
	defaultHistoryLimit = 1000
)

// Kind classifies a detected transition.
type Kind string

const (
	KindSeasonChange Kind = "season_change"
	KindPhaseChange  Kind = "phase_change"
	KindWeekChange   Kind = "week_change"
)

// Event is one detected transition for a sport. From and To hold the old and
// new values of whichever field changed; Season and Phase carry context for
// phase and week changes.
type Event struct {
	Sport     string    `json:"sport"`
	Kind      Kind      `json:"type"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Season    string    `json:"season,omitempty"`
	Phase     string    `json:"phase,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink receives emitted events. Implementations must tolerate being called
// from the monitor loop; a returned error is logged and isolated.
type Sink interface {
	Name() string
	Notify(ctx context.Context, ev Event) error
}

// state is the last observed snapshot for one sport. A failed observation
// records the error text instead of season data.
type state struct {
	Season string
	Phase  seasons.Phase
	Week   int
	Err    string
}

// Monitor polls the season table, diffs consecutive per-sport snapshots and
// dispatches transition events to registered sinks. Each sport's last
// snapshot is tracked independently.
type Monitor struct {
	table    *seasontable.Table
	sports   []string
	interval time.Duration
	logger   *slog.Logger
	metrics  *metrics.Recorder
	store    *history.Store
	now      func() time.Time

	mu           sync.Mutex
	last         map[string]state
	events       []Event
	historyLimit int
	sinks        []Sink

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
}

// Option tweaks Monitor construction.
type Option func(*Monitor)

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// WithHistoryLimit bounds the in-memory event history.
func WithHistoryLimit(limit int) Option {
	return func(m *Monitor) {
		if limit > 0 {
			m.historyLimit = limit
		}
	}
}

// WithHistoryStore persists emitted events to a durable store.
func WithHistoryStore(store *history.Store) Option {
	return func(m *Monitor) { m.store = store }
}

// WithMetrics records cycle and transition metrics.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(m *Monitor) { m.metrics = recorder }
}

// New constructs a Monitor over the given sports with sane defaults. A nil
// or empty sports list tracks every sport in the table.
func New(table *seasontable.Table, sports []string, interval time.Duration, logger *slog.Logger, opts ...Option) *Monitor {
	if interval <= 0 {
		interval = defaultInterval
	}
	m := &Monitor{
		table:        table,
		sports:       sports,
		interval:     interval,
		logger:       logger,
		now:          time.Now,
		last:         make(map[string]state),
		historyLimit: defaultHistoryLimit,
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSink registers an alert sink. Sinks run synchronously in registration
// order on every emitted event.
func (m *Monitor) AddSink(s Sink) {
	if s == nil {
		return
	}
	m.mu.Lock()
	m.sinks = append(m.sinks, s)
	m.mu.Unlock()
}

func (m *Monitor) trackedSports() []string {
	if len(m.sports) > 0 {
		return m.sports
	}
	return m.table.Sports()
}

func (m *Monitor) observe(sport string, at time.Time) state {
	seasonID, err := m.table.CurrentSeason(sport, at)
	if err != nil {
		return state{Err: err.Error()}
	}
	b, err := m.table.Get(sport, seasonID)
	if err != nil {
		return state{Err: err.Error()}
	}
	phase, week := seasons.Resolve(b, at)
	return state{Season: seasonID, Phase: phase, Week: week}
}

// DetectTransitions computes a fresh snapshot for every tracked sport, diffs
// it against the last one and returns the emitted events. First observations
// and failed observations record a baseline and emit nothing. Snapshots are
// always overwritten, fired or not, so a cycle is never reported twice.
func (m *Monitor) DetectTransitions(ctx context.Context) []Event {
	start := m.now()
	at := start.UTC()

	var events []Event
	var cycleErr error
	for _, sport := range m.trackedSports() {
		current := m.observe(sport, at)
		if current.Err != "" {
			cycleErr = errors.New(current.Err)
			logging.Warn(m.logger, "season snapshot failed",
				logging.FieldSport, sport, "error", current.Err)
		}

		m.mu.Lock()
		prev, seen := m.last[sport]
		m.last[sport] = current
		m.mu.Unlock()

		if !seen || current.Err != "" || prev.Err != "" {
			// Baseline: first sight of the sport, or an error on either side
			// of the diff. Re-observe before reporting transitions.
			continue
		}

		if ev, ok := classify(sport, prev, current, at); ok {
			events = append(events, ev)
			m.emit(ctx, ev)
		}
	}

	m.metrics.RecordMonitorCycle(m.now().Sub(start), cycleErr)
	return events
}

// classify picks at most one transition per sport in fixed priority: season
// change beats phase change beats week change. Week changes to "no week"
// (off-season) are not reported on their own.
func classify(sport string, prev, current state, at time.Time) (Event, bool) {
	switch {
	case current.Season != prev.Season:
		return Event{
			Sport:     sport,
			Kind:      KindSeasonChange,
			From:      prev.Season,
			To:        current.Season,
			Timestamp: at,
		}, true
	case current.Phase != prev.Phase:
		return Event{
			Sport:     sport,
			Kind:      KindPhaseChange,
			From:      string(prev.Phase),
			To:        string(current.Phase),
			Season:    current.Season,
			Timestamp: at,
		}, true
	case current.Week != prev.Week && current.Week != 0:
		return Event{
			Sport:     sport,
			Kind:      KindWeekChange,
			From:      strconv.Itoa(prev.Week),
			To:        strconv.Itoa(current.Week),
			Season:    current.Season,
			Phase:     string(current.Phase),
			Timestamp: at,
		}, true
	default:
		return Event{}, false
	}
}

func (m *Monitor) emit(ctx context.Context, ev Event) {
	m.metrics.RecordTransition(ev.Sport, string(ev.Kind))
	logging.Info(m.logger, "season transition detected",
		logging.FieldSport, ev.Sport, "kind", string(ev.Kind), "from", ev.From, "to", ev.To)

	m.mu.Lock()
	m.events = append(m.events, ev)
	if len(m.events) > m.historyLimit {
		m.events = m.events[len(m.events)-m.historyLimit:]
	}
	sinks := make([]Sink, len(m.sinks))
	copy(sinks, m.sinks)
	m.mu.Unlock()

	if m.store != nil {
		rec := history.Record{
			Sport:      ev.Sport,
			Kind:       string(ev.Kind),
			FromValue:  ev.From,
			ToValue:    ev.To,
			Season:     ev.Season,
			Phase:      ev.Phase,
			OccurredAt: ev.Timestamp,
		}
		if err := m.store.Append(ctx, rec); err != nil {
			logging.Warn(m.logger, "could not persist transition event", "error", err)
		}
	}

	for _, sink := range sinks {
		if err := sink.Notify(ctx, ev); err != nil {
			m.metrics.RecordSinkFailure(sink.Name())
			logging.Error(m.logger, "alert sink failed", err, "sink", sink.Name())
		}
	}
}

// History returns up to limit most recent in-memory events, oldest first.
// A non-positive limit returns the whole retained window.
func (m *Monitor) History(limit int) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := m.events
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

// LastStates returns a copy of the last observed snapshot per sport.
func (m *Monitor) LastStates() map[string]seasons.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]seasons.Snapshot, len(m.last))
	for sport, st := range m.last {
		if st.Err != "" {
			continue
		}
		out[sport] = seasons.Snapshot{
			Sport:    sport,
			SeasonID: st.Season,
			Phase:    st.Phase,
			Week:     st.Week,
		}
	}
	return out
}

// Start begins polling until the context is cancelled or Stop is called.
func (m *Monitor) Start(ctx context.Context) {
	m.startMu.Lock()
	if m.started {
		m.startMu.Unlock()
		return
	}
	m.started = true
	m.startMu.Unlock()

	m.ticker = time.NewTicker(m.interval)

	go func() {
		logging.Info(m.logger, "transition monitor started",
			logging.FieldDurationMS, m.interval.Milliseconds())
		// Initial detection to record baselines on boot.
		m.DetectTransitions(ctx)

		for {
			select {
			case <-ctx.Done():
				m.stopTicker()
				logging.Info(m.logger, "transition monitor stopped")
				return
			case <-m.done:
				m.stopTicker()
				logging.Info(m.logger, "transition monitor stopped")
				return
			case <-m.ticker.C:
				m.DetectTransitions(ctx)
			}
		}
	}()
}

// Run blocks, polling on the configured interval until the context is
// cancelled or the optional duration elapses (zero means run indefinitely).
func (m *Monitor) Run(ctx context.Context, duration time.Duration) {
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}
	m.Start(ctx)
	select {
	case <-ctx.Done():
	case <-m.done:
	}
}

// Stop halts the polling loop.
func (m *Monitor) Stop(ctx context.Context) error {
	_ = ctx
	m.stopOnce.Do(func() {
		close(m.done)
		m.stopTicker()
	})
	return nil
}

func (m *Monitor) stopTicker() {
	if m.ticker != nil {
		m.ticker.Stop()
	}
}
