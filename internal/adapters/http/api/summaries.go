// Package api declares HTTP contracts and route registration helpers for
// the read-only summary API.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/rollcall/internal/adapters/repository"
)

// SummariesHandler handles summary read requests.
type SummariesHandler struct {
	deps Dependencies
}

// NewSummariesHandler creates a new summaries handler.
func NewSummariesHandler(deps Dependencies) *SummariesHandler {
	return &SummariesHandler{deps: deps}
}

// HandleList handles GET /summaries requests.
func (h *SummariesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Summaries(r.Context()))
}

// HandleGet handles GET /summaries/{identity_id} requests.
func (h *SummariesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /summaries/
	path := strings.TrimPrefix(r.URL.Path, "/summaries/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	id, err := strconv.Atoi(path)
	if err != nil || id < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	sum, err := h.deps.Summary(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
