package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ashureev/negotium/internal/domain"
)

const defaultSessionLimit = 10

// SessionSummary is the list-view projection of a stored session.
type SessionSummary struct {
	ID        string  `json:"id"`
	Scenario  string  `json:"scenario"`
	Leverage  float64 `json:"leverage"`
	Timestamp string  `json:"timestamp"`
}

// SessionListResponse is the body of GET /sessions. Count always
// matches the length of Sessions.
type SessionListResponse struct {
	Sessions []SessionSummary `json:"sessions"`
	Count    int              `json:"count"`
}

// ListSessions returns the most recently updated sessions.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	limit := defaultSessionLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	sessions, err := h.repo.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, SessionSummary{
			ID:        s.ID,
			Scenario:  s.Scenario,
			Leverage:  s.Leverage,
			Timestamp: s.UpdatedAt.UTC().Format(time.RFC3339Nano),
		})
	}

	JSON(w, http.StatusOK, SessionListResponse{Sessions: summaries, Count: len(summaries)})
}

// ScenarioListResponse is the body of GET /scenarios.
type ScenarioListResponse struct {
	Scenarios []domain.Scenario `json:"scenarios"`
	Count     int               `json:"count"`
}

// ListScenarios serves the built-in practice catalog.
func (h *Handler) ListScenarios(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, ScenarioListResponse{
		Scenarios: domain.BuiltinScenarios,
		Count:     len(domain.BuiltinScenarios),
	})
}
