package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hoa-reconcile/internal/store"
)

// RunsHandler lists archived match runs from the database.
type RunsHandler struct {
	Store  *store.Store
	Config *Config
}

// ListRuns returns archived runs, newest first.
func (h *RunsHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		http.Error(w, "Run archive not configured", http.StatusServiceUnavailable)
		return
	}

	limit := parseIntParam(r.URL.Query().Get("limit"), 20)
	if limit > 100 {
		limit = 100
	}

	runs, err := h.Store.ListRuns(limit)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []store.RunInfo{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}
