package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Cl4ydson/sinistros-control/internal/sinistro"
)

// respondError translates domain errors into HTTP status codes in one place
// so every handler reports failures the same way.
func (app *application) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sinistro.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, sinistro.ErrValidation), errors.Is(err, sinistro.ErrCapacityExceeded):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, sinistro.ErrConflict):
		writeJSONError(w, http.StatusConflict, err.Error())
	case sinistro.IsTransient(err):
		writeJSONError(w, http.StatusServiceUnavailable, "database temporarily unavailable: "+err.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}

func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// usuarioDe identifies the acting user for the audit columns. The legacy
// frontend sends it as a header; absent callers are recorded as "sistema".
func usuarioDe(r *http.Request) string {
	if u := r.Header.Get("X-Usuario"); u != "" {
		return u
	}
	return "sistema"
}

func parseTime(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

func parseTimeParam(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := parseTime(raw)
	if err != nil {
		return nil
	}
	return &t
}

func parseIntOrDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
