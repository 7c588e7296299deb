// Package api declares HTTP contracts and route registration helpers for
// the read-only summary API.
package api

import (
	"net/http"
)

// RosterHandler handles roster requests.
type RosterHandler struct {
	deps Dependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps Dependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandleRoster handles GET /roster requests. The response is the subset of
// summaries passing the roster inclusion rule.
func (h *RosterHandler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	roster, err := h.deps.Roster(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}
