package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	appseasons "season-service/internal/app/seasons"
	domainseasons "season-service/internal/domain/seasons"
	"season-service/internal/logging"
	"season-service/internal/seasontable"
	"season-service/internal/timeutil"
)

const maxAdminBody = 64 << 10

// AdminHandler exposes token-guarded season mutation endpoints.
type AdminHandler struct {
	svc    *appseasons.Service
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token disables all
// admin routes.
func NewAdminHandler(svc *appseasons.Service, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, token: token, logger: logger}
}

// ServeSeason handles POST /seasons/{sport} or /seasons/{sport}/{season}
// (add) and PATCH /seasons/{sport}/{season} (partial update).
func (h *AdminHandler) ServeSeason(w http.ResponseWriter, r *http.Request, sport, seasonID string) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", r.RemoteAddr),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}

	switch {
	case r.Method == http.MethodPost:
		h.addSeason(w, r, sport, seasonID)
	case seasonID != "" && r.Method == http.MethodPatch:
		h.updateSeason(w, r, sport, seasonID)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *AdminHandler) addSeason(w http.ResponseWriter, r *http.Request, sport, seasonID string) {
	logger := loggerFromContext(r, h.logger)
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	// Season id comes from the path when present, else from the body.
	if seasonID == "" {
		seasonID = strings.TrimSpace(gjson.GetBytes(body, "season_year").String())
	}
	if seasonID == "" {
		writeError(w, r, http.StatusBadRequest, "missing season_year", logger)
		return
	}
	if _, err := strconv.Atoi(seasonID); err != nil {
		writeError(w, r, http.StatusBadRequest, "season_year must be numeric", logger)
		return
	}

	var b domainseasons.Boundaries
	b.Name = gjson.GetBytes(body, "name").String()
	if b.Name == "" {
		b.Name = strings.ToUpper(sport) + " " + seasonID
	}
	b.APIBase = gjson.GetBytes(body, "api_base").String()

	for _, field := range []struct {
		key string
		dst *time.Time
	}{
		{"pre_season_start", &b.PreSeasonStart},
		{"regular_season_start", &b.RegularSeasonStart},
		{"regular_season_end", &b.RegularSeasonEnd},
		{"playoffs_start", &b.PlayoffsStart},
		{"playoffs_end", &b.PlayoffsEnd},
	} {
		raw := gjson.GetBytes(body, field.key)
		if !raw.Exists() {
			writeError(w, r, http.StatusBadRequest, "missing "+field.key, logger)
			return
		}
		parsed, err := timeutil.ParseDate(raw.String())
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid "+field.key, logger)
			return
		}
		*field.dst = parsed
	}

	if err := h.svc.AddSeason(sport, seasonID, b); err != nil {
		h.writeMutationError(w, r, err, logger)
		return
	}

	logging.Info(logger, "season added",
		slog.String(logging.FieldSport, sport),
		slog.String(logging.FieldSeason, seasonID),
	)
	writeJSON(w, http.StatusCreated, map[string]string{
		"sport":       sport,
		"season_year": seasonID,
		"status":      "created",
	}, logger)
}

func (h *AdminHandler) updateSeason(w http.ResponseWriter, r *http.Request, sport, seasonID string) {
	logger := loggerFromContext(r, h.logger)
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	var patch seasontable.Partial
	touched := false

	if res := gjson.GetBytes(body, "name"); res.Exists() {
		name := res.String()
		patch.Name = &name
		touched = true
	}
	if res := gjson.GetBytes(body, "api_base"); res.Exists() {
		base := res.String()
		patch.APIBase = &base
		touched = true
	}
	for _, field := range []struct {
		key string
		dst **time.Time
	}{
		{"pre_season_start", &patch.PreSeasonStart},
		{"regular_season_start", &patch.RegularSeasonStart},
		{"regular_season_end", &patch.RegularSeasonEnd},
		{"playoffs_start", &patch.PlayoffsStart},
		{"playoffs_end", &patch.PlayoffsEnd},
	} {
		res := gjson.GetBytes(body, field.key)
		if !res.Exists() {
			continue
		}
		parsed, err := timeutil.ParseDate(res.String())
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid "+field.key, logger)
			return
		}
		*field.dst = &parsed
		touched = true
	}

	if !touched {
		writeError(w, r, http.StatusBadRequest, "no updatable fields in body", logger)
		return
	}

	if err := h.svc.UpdateSeason(sport, seasonID, patch); err != nil {
		h.writeMutationError(w, r, err, logger)
		return
	}

	logging.Info(logger, "season updated",
		slog.String(logging.FieldSport, sport),
		slog.String(logging.FieldSeason, seasonID),
	)
	writeJSON(w, http.StatusOK, map[string]string{
		"sport":       sport,
		"season_year": seasonID,
		"status":      "updated",
	}, logger)
}

func (h *AdminHandler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxAdminBody))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "unreadable body", h.logger)
		return nil, false
	}
	if !gjson.ValidBytes(body) {
		writeError(w, r, http.StatusBadRequest, "invalid json", h.logger)
		return nil, false
	}
	return body, true
}

func (h *AdminHandler) writeMutationError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, domainseasons.ErrUnknownSport), errors.Is(err, domainseasons.ErrUnknownSeason):
		writeError(w, r, http.StatusNotFound, err.Error(), logger)
	case errors.Is(err, domainseasons.ErrInvalidDateRange):
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error", logger)
	}
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
