package http

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	appseasons "season-service/internal/app/seasons"
	domainseasons "season-service/internal/domain/seasons"
	"season-service/internal/forecast"
	"season-service/internal/http/handlers"
	"season-service/internal/seasontable"
	"season-service/internal/timeutil"
)

func routerFixture(t *testing.T) nethttp.Handler {
	t.Helper()
	mustDate := func(value string) time.Time {
		parsed, err := timeutil.ParseDate(value)
		if err != nil {
			t.Fatalf("bad test date %q: %v", value, err)
		}
		return parsed
	}
	table := seasontable.NewWithSeasons(map[string]map[string]domainseasons.Boundaries{
		"wnba": {
			"2025": {
				Name:               "WNBA 2025",
				PreSeasonStart:     mustDate("2025-05-02"),
				RegularSeasonStart: mustDate("2025-05-16"),
				RegularSeasonEnd:   mustDate("2025-09-11"),
				PlayoffsStart:      mustDate("2025-09-14"),
				PlayoffsEnd:        mustDate("2025-10-19"),
			},
		},
	}, nil, nil)
	svc := appseasons.NewService(table)
	return NewRouter(handlers.NewHandler(svc, forecast.New(table, nil), nil, nil, nil, nil))
}

func TestRouterRoutes(t *testing.T) {
	router := routerFixture(t)

	cases := []struct {
		path   string
		status int
	}{
		{"/health", nethttp.StatusOK},
		{"/ready", nethttp.StatusOK},
		{"/sports", nethttp.StatusOK},
		{"/transitions", nethttp.StatusOK},
		{"/analysis", nethttp.StatusOK},
		{"/seasons/wnba", nethttp.StatusOK},
		{"/seasons/wnba/current?date=2025-06-01", nethttp.StatusOK},
		{"/seasons/wnba/forecast?year=2027", nethttp.StatusOK},
		{"/seasons/cricket", nethttp.StatusNotFound},
		{"/nope", nethttp.StatusNotFound},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(nethttp.MethodGet, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Fatalf("%s: status = %d, want %d (%s)", tc.path, rec.Code, tc.status, rec.Body.String())
		}
	}
}

func TestRouterCurrentSeasonPayload(t *testing.T) {
	router := routerFixture(t)

	req := httptest.NewRequest(nethttp.MethodGet, "/seasons/wnba/current?date=2025-06-01", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["phase"] != "Regular Season" {
		t.Fatalf("phase = %v", body["phase"])
	}
}
