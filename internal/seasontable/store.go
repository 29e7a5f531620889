package seasontable

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"season-service/internal/domain/seasons"
	"season-service/internal/timeutil"
)

// Store persists the full season document. The table reads it once at
// startup and rewrites it in full after every mutation.
type Store interface {
	Load() (map[string]map[string]seasons.Boundaries, error)
	Save(data map[string]map[string]seasons.Boundaries) error
}

// seasonRecord is the on-disk shape of one season, with ISO date strings.
type seasonRecord struct {
	Name               string `json:"name"`
	PreSeasonStart     string `json:"pre_season_start"`
	RegularSeasonStart string `json:"regular_season_start"`
	RegularSeasonEnd   string `json:"regular_season_end"`
	PlayoffsStart      string `json:"playoffs_start"`
	PlayoffsEnd        string `json:"playoffs_end"`
	APIBase            string `json:"api_base"`
}

type document struct {
	Seasons  map[string]map[string]seasonRecord `json:"seasons"`
	Settings settings                           `json:"settings"`
}

type settings struct {
	AutoDetectSeason bool     `json:"auto_detect_season"`
	DefaultSeason    string   `json:"default_season"`
	SupportedSports  []string `json:"supported_sports"`
}

// FileStore keeps the season document as a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore constructs a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and validates the whole season document. A missing file returns
// os.ErrNotExist so the caller can fall back to defaults.
func (s *FileStore) Load() (map[string]map[string]seasons.Boundaries, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var doc document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return decodeDocument(doc)
}

// Save rewrites the whole season document atomically (tmp file + rename).
func (s *FileStore) Save(data map[string]map[string]seasons.Boundaries) error {
	if s == nil || s.path == "" {
		return errors.New("season store not configured")
	}
	doc := encodeDocument(data)
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func decodeDocument(doc document) (map[string]map[string]seasons.Boundaries, error) {
	out := make(map[string]map[string]seasons.Boundaries, len(doc.Seasons))
	for sport, years := range doc.Seasons {
		out[sport] = make(map[string]seasons.Boundaries, len(years))
		for year, rec := range years {
			b, err := rec.toBoundaries()
			if err != nil {
				return nil, fmt.Errorf("season %s/%s: %w", sport, year, err)
			}
			out[sport][year] = b
		}
	}
	return out, nil
}

func encodeDocument(data map[string]map[string]seasons.Boundaries) document {
	doc := document{
		Seasons: make(map[string]map[string]seasonRecord, len(data)),
		Settings: settings{
			AutoDetectSeason: true,
			DefaultSeason:    "current",
			SupportedSports:  SupportedSports(),
		},
	}
	for sport, years := range data {
		doc.Seasons[sport] = make(map[string]seasonRecord, len(years))
		for year, b := range years {
			doc.Seasons[sport][year] = seasonRecord{
				Name:               b.Name,
				PreSeasonStart:     timeutil.FormatDate(b.PreSeasonStart),
				RegularSeasonStart: timeutil.FormatDate(b.RegularSeasonStart),
				RegularSeasonEnd:   timeutil.FormatDate(b.RegularSeasonEnd),
				PlayoffsStart:      timeutil.FormatDate(b.PlayoffsStart),
				PlayoffsEnd:        timeutil.FormatDate(b.PlayoffsEnd),
				APIBase:            b.APIBase,
			}
		}
	}
	return doc
}

func (r seasonRecord) toBoundaries() (seasons.Boundaries, error) {
	b := seasons.Boundaries{Name: r.Name, APIBase: r.APIBase}
	fields := []struct {
		name  string
		value string
		dst   *time.Time
	}{
		{"pre_season_start", r.PreSeasonStart, &b.PreSeasonStart},
		{"regular_season_start", r.RegularSeasonStart, &b.RegularSeasonStart},
		{"regular_season_end", r.RegularSeasonEnd, &b.RegularSeasonEnd},
		{"playoffs_start", r.PlayoffsStart, &b.PlayoffsStart},
		{"playoffs_end", r.PlayoffsEnd, &b.PlayoffsEnd},
	}
	for _, f := range fields {
		parsed, err := timeutil.ParseDate(f.value)
		if err != nil {
			return seasons.Boundaries{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = parsed
	}
	if err := b.Validate(); err != nil {
		return seasons.Boundaries{}, err
	}
	return b, nil
}
