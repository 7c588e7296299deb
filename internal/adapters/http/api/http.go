// Package api declares HTTP contracts and route registration helpers for
// the read-only summary API.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/rollcall/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Summaries returns every summary from the most recent run in
	// identity-id order.
	Summaries(ctx context.Context) []model.AttendanceSummary

	// Summary returns the summary for one identity.
	Summary(ctx context.Context, identityID int) (model.AttendanceSummary, error)

	// Roster returns the summaries passing the roster inclusion rule.
	Roster(ctx context.Context) ([]model.AttendanceSummary, error)

	// GetStats exposes run counters for observability.
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the read API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	summariesHandler *SummariesHandler
	rosterHandler    *RosterHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps),
		summariesHandler: NewSummariesHandler(deps),
		rosterHandler:    NewRosterHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/summaries", MetricsMiddleware(s.summariesHandler.HandleList, "summaries"))
	mux.HandleFunc("/summaries/", MetricsMiddleware(s.summariesHandler.HandleGet, "summary"))
	mux.HandleFunc("/roster", MetricsMiddleware(s.rosterHandler.HandleRoster, "roster"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
