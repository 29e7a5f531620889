package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	appseasons "season-service/internal/app/seasons"
	domainseasons "season-service/internal/domain/seasons"
	"season-service/internal/forecast"
	"season-service/internal/history"
	"season-service/internal/monitor"
	"season-service/internal/timeutil"
)

type nowFunc func() time.Time

// Handler wires HTTP routes to the season services.
type Handler struct {
	svc        *appseasons.Service
	forecaster *forecast.Forecaster
	mon        *monitor.Monitor
	hist       *history.Store
	admin      *AdminHandler
	logger     *slog.Logger
	now        nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc *appseasons.Service, forecaster *forecast.Forecaster, mon *monitor.Monitor, hist *history.Store, admin *AdminHandler, logger *slog.Logger) *Handler {
	return &Handler{
		svc:        svc,
		forecaster: forecaster,
		mon:        mon,
		hist:       hist,
		admin:      admin,
		logger:     logger,
		now:        time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (h *Handler) WithNow(now nowFunc) *Handler {
	h.now = now
	return h
}

func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/sports":
		h.Sports(w, r)
	case r.URL.Path == "/transitions":
		h.Transitions(w, r)
	case r.URL.Path == "/analysis":
		h.Analysis(w, r)
	case strings.HasPrefix(r.URL.Path, "/seasons/"):
		h.seasonRoutes(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// seasonRoutes dispatches /seasons/{sport} and /seasons/{sport}/{rest}.
func (h *Handler) seasonRoutes(w nethttp.ResponseWriter, r *nethttp.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/seasons/")
	parts := strings.SplitN(rest, "/", 2)
	sport := strings.ToLower(strings.TrimSpace(parts[0]))
	if sport == "" {
		writeError(w, r, nethttp.StatusBadRequest, "missing sport", h.logger)
		return
	}

	if len(parts) == 1 || parts[1] == "" {
		switch r.Method {
		case nethttp.MethodGet:
			h.Seasons(w, r, sport)
		case nethttp.MethodPost:
			h.adminRoute(w, r, sport, "")
		default:
			writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		}
		return
	}

	switch parts[1] {
	case "current":
		h.CurrentSeason(w, r, sport)
	case "info":
		h.SeasonInfo(w, r, sport)
	case "progress":
		h.Progress(w, r, sport)
	case "transition":
		h.Transition(w, r, sport)
	case "forecast":
		h.Forecast(w, r, sport)
	case "trends":
		h.Trends(w, r, sport)
	case "compare":
		h.Compare(w, r, sport)
	default:
		// Remaining segment is a season id; only admin mutation lives here.
		h.adminRoute(w, r, sport, parts[1])
	}
}

func (h *Handler) adminRoute(w nethttp.ResponseWriter, r *nethttp.Request, sport, seasonID string) {
	if h.admin == nil {
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
		return
	}
	h.admin.ServeSeason(w, r, sport, seasonID)
}

func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes). The
// season table is loaded at startup, so readiness follows health.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.svc == nil || len(h.svc.Sports()) == 0 {
		writeError(w, r, nethttp.StatusServiceUnavailable, "season table empty", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// Sports lists the sports in the table.
func (h *Handler) Sports(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"sports": h.svc.Sports()}, h.logger)
}

// Seasons lists the recorded season ids for a sport.
func (h *Handler) Seasons(w nethttp.ResponseWriter, r *nethttp.Request, sport string) {
	seasons := h.svc.AvailableSeasons(sport)
	if len(seasons) == 0 {
		writeError(w, r, nethttp.StatusNotFound, "unknown sport", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"sport": sport, "seasons": seasons}, h.logger)
}

// CurrentSeason returns the derived state of the season containing the date.
func (h *Handler) CurrentSeason(w nethttp.ResponseWriter, r *nethttp.Request, sport string) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	info, err := h.svc.SeasonInfo(sport, "", date)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, info, h.logger)
}

// SeasonInfo returns derived state for an explicit season (or current when the
// season query param is absent).
func (h *Handler) SeasonInfo(w nethttp.ResponseWriter, r *nethttp.Request, sport string) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	info, err := h.svc.SeasonInfo(sport, strings.TrimSpace(r.URL.Query().Get("season")), date)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, info, h.logger)
}

// Progress returns overall and phase progress for a season.
func (h *Handler) Progress(w nethttp.ResponseWriter, r *nethttp.Request, sport string) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	report, err := h.svc.SeasonProgress(sport, strings.TrimSpace(r.URL.Query().Get("season")), date)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, report, h.logger)
}

// Transition reports the current season and the next recorded one.
func (h *Handler) Transition(w nethttp.ResponseWriter, r *nethttp.Request, sport string) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	info, err := h.svc.SeasonTransitionInfo(sport, date)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, info, h.logger)
}

// Forecast predicts boundaries for future seasons of a sport.
func (h *Handler) Forecast(w nethttp.ResponseWriter, r *nethttp.Request, sport string) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	year := h.now().UTC().Year() + 1
	if raw := strings.TrimSpace(r.URL.Query().Get("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2200 {
			writeError(w, r, nethttp.StatusBadRequest, "invalid year", h.logger)
			return
		}
		year = parsed
	}
	count := 1
	if raw := strings.TrimSpace(r.URL.Query().Get("count")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 10 {
			writeError(w, r, nethttp.StatusBadRequest, "invalid count", h.logger)
			return
		}
		count = parsed
	}

	items := forecast.PredictRange(sport, year, count)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		entry := map[string]any{"year": item.Year}
		if item.Err != nil {
			entry["error"] = item.Err.Error()
		} else {
			entry["prediction"] = item.Prediction
		}
		out = append(out, entry)
	}
	if len(items) == 1 && items[0].Err != nil {
		h.writeDomainError(w, r, items[0].Err)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"sport": sport, "forecasts": out}, h.logger)
}

// Trends summarizes boundary drift across a sport's recorded seasons.
func (h *Handler) Trends(w nethttp.ResponseWriter, r *nethttp.Request, sport string) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.forecaster == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "forecaster not configured", h.logger)
		return
	}
	trends, err := h.forecaster.Trends(sport)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, trends, h.logger)
}

// Compare reports progress for every recorded season of a sport.
func (h *Handler) Compare(w nethttp.ResponseWriter, r *nethttp.Request, sport string) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	cmp := h.svc.CompareSeasons(sport, date)
	if len(cmp.Reports) == 0 && len(cmp.Errors) == 0 {
		writeError(w, r, nethttp.StatusNotFound, "unknown sport", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, cmp, h.logger)
}

// Analysis reports current-season progress across every sport.
func (h *Handler) Analysis(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, h.svc.CrossSportAnalysis(date), h.logger)
}

// Transitions returns recent transition events, newest first. When a history
// database is configured it is the source; otherwise the in-memory ring serves.
func (h *Handler) Transitions(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 1000 {
			writeError(w, r, nethttp.StatusBadRequest, "invalid limit", h.logger)
			return
		}
		limit = parsed
	}
	sport := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("sport")))

	if h.hist != nil {
		records, err := h.histRecords(r, sport, limit)
		if err != nil {
			writeError(w, r, nethttp.StatusInternalServerError, "history unavailable", h.logger)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"transitions": records}, h.logger)
		return
	}

	if h.mon == nil {
		writeJSON(w, nethttp.StatusOK, map[string]any{"transitions": []monitor.Event{}}, h.logger)
		return
	}
	events := h.mon.History(0)
	// Ring is oldest-first; serve newest first like the database path.
	out := make([]monitor.Event, 0, limit)
	for i := len(events) - 1; i >= 0 && len(out) < limit; i-- {
		if sport != "" && events[i].Sport != sport {
			continue
		}
		out = append(out, events[i])
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"transitions": out}, h.logger)
}

func (h *Handler) histRecords(r *nethttp.Request, sport string, limit int) ([]history.Record, error) {
	if sport != "" {
		return h.hist.RecentForSport(r.Context(), sport, limit)
	}
	return h.hist.Recent(r.Context(), limit)
}

// dateParam parses the optional date query param. A zero time means "now".
func (h *Handler) dateParam(w nethttp.ResponseWriter, r *nethttp.Request) (time.Time, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		return time.Time{}, true
	}
	parsed, err := timeutil.ParseDate(raw)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
		return time.Time{}, false
	}
	return parsed, true
}

func (h *Handler) writeDomainError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	logger := loggerFromContext(r, h.logger)
	switch {
	case errors.Is(err, domainseasons.ErrUnknownSport), errors.Is(err, domainseasons.ErrUnknownSeason):
		writeError(w, r, nethttp.StatusNotFound, err.Error(), logger)
	case errors.Is(err, domainseasons.ErrInvalidDateRange):
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, domainseasons.ErrInsufficientData):
		writeError(w, r, nethttp.StatusUnprocessableEntity, err.Error(), logger)
	default:
		writeError(w, r, nethttp.StatusInternalServerError, "internal error", logger)
	}
}
