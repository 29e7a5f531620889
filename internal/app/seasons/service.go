package seasons

import (
	"time"

	domainseasons "season-service/internal/domain/seasons"
	"season-service/internal/seasontable"
)

// Service answers season queries against the table. All phase data is
// derived fresh from the boundaries on every call.
type Service struct {
	table *seasontable.Table
	now   func() time.Time
}

// NewService constructs a Service over the given table.
func NewService(table *seasontable.Table) *Service {
	return &Service{table: table, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) today(on time.Time) time.Time {
	if !on.IsZero() {
		return on
	}
	return s.now().UTC()
}

// Info is the full derived view of one sport-season at a date.
type Info struct {
	Sport      string                   `json:"sport"`
	SeasonID   string                   `json:"season_year"`
	Name       string                   `json:"name"`
	Phase      domainseasons.Phase      `json:"phase"`
	Week       int                      `json:"week,omitempty"`
	APIBase    string                   `json:"api_base"`
	Boundaries domainseasons.Boundaries `json:"dates"`
}

// CurrentSeason returns the season id containing the date (zero date means
// now).
func (s *Service) CurrentSeason(sport string, on time.Time) (string, error) {
	return s.table.CurrentSeason(sport, s.today(on))
}

// SeasonInfo resolves a season's derived state. An empty seasonID selects the
// current season for the date.
func (s *Service) SeasonInfo(sport, seasonID string, on time.Time) (Info, error) {
	date := s.today(on)
	if seasonID == "" {
		current, err := s.table.CurrentSeason(sport, date)
		if err != nil {
			return Info{}, err
		}
		seasonID = current
	}

	b, err := s.table.Get(sport, seasonID)
	if err != nil {
		return Info{}, err
	}

	phase, week := domainseasons.Resolve(b, date)
	return Info{
		Sport:      sport,
		SeasonID:   seasonID,
		Name:       b.Name,
		Phase:      phase,
		Week:       week,
		APIBase:    b.APIBase,
		Boundaries: b,
	}, nil
}

// AvailableSeasons returns the sorted season ids for a sport.
func (s *Service) AvailableSeasons(sport string) []string {
	return s.table.Seasons(sport)
}

// Sports returns the sorted sports in the table.
func (s *Service) Sports() []string {
	return s.table.Sports()
}

// AddSeason inserts or overwrites a season.
func (s *Service) AddSeason(sport, seasonID string, b domainseasons.Boundaries) error {
	return s.table.Put(sport, seasonID, b)
}

// UpdateSeason overlays fields onto an existing season.
func (s *Service) UpdateSeason(sport, seasonID string, patch seasontable.Partial) error {
	return s.table.Merge(sport, seasonID, patch)
}

// TransitionInfo describes the current season and the next recorded one.
type TransitionInfo struct {
	CurrentSeason    string   `json:"current_season"`
	CurrentInfo      Info     `json:"current_season_info"`
	NextSeason       string   `json:"next_season,omitempty"`
	NextInfo         *Info    `json:"next_season_info,omitempty"`
	AvailableSeasons []string `json:"available_seasons"`
}

// SeasonTransitionInfo reports the current season plus the next recorded
// season, when one exists.
func (s *Service) SeasonTransitionInfo(sport string, on time.Time) (TransitionInfo, error) {
	date := s.today(on)
	current, err := s.table.CurrentSeason(sport, date)
	if err != nil {
		return TransitionInfo{}, err
	}
	currentInfo, err := s.SeasonInfo(sport, current, date)
	if err != nil {
		return TransitionInfo{}, err
	}

	available := s.table.Seasons(sport)
	out := TransitionInfo{
		CurrentSeason:    current,
		CurrentInfo:      currentInfo,
		AvailableSeasons: available,
	}

	for _, id := range available {
		if id > current {
			out.NextSeason = id
			break
		}
	}
	if out.NextSeason != "" {
		next, err := s.SeasonInfo(sport, out.NextSeason, date)
		if err == nil {
			out.NextInfo = &next
		}
	}
	return out, nil
}
