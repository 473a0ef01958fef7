package httpserver

import (
	"net/http"
	"strconv"

	"dbmigrate/internal/store"
)

const defaultLogLimit = 50

// LogHandler serves the most recent applied-change log entries.
type LogHandler struct {
	Log store.Log
}

type logResponse struct {
	Entries []store.Entry `json:"entries"`
}

func (h LogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit := defaultLogLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.Log.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "log_unavailable", "could not read applied-change log")
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	writeJSON(w, http.StatusOK, logResponse{Entries: entries})
}
