// Package api provides HTTP handlers for the Negotium API.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/containerd/errdefs"
	"github.com/go-chi/chi/v5"

	"github.com/ashureev/negotium/internal/domain"
	"github.com/ashureev/negotium/internal/negotiation"
	"github.com/ashureev/negotium/internal/shared"
	"github.com/ashureev/negotium/internal/store"
)

// TurnProcessor runs one negotiation turn.
type TurnProcessor interface {
	ProcessTurn(ctx context.Context, scenario string, history []domain.ChatMessage, currentLeverage float64) (negotiation.TurnResult, error)
}

// AnalysisGenerator produces a post-session analysis report. The bool
// result reports whether the fixed fallback report was substituted.
type AnalysisGenerator interface {
	Generate(ctx context.Context, scenario string, history []domain.ChatMessage) (domain.AnalysisReport, bool)
}

// Handler serves the negotiation API.
type Handler struct {
	repo        store.Repository
	coordinator TurnProcessor
	analyzer    AnalysisGenerator

	// sessionLocks serializes writes per session id; the store itself
	// is last-write-wins for concurrent updates to one document.
	sessionLocks *shared.KeyedMutex
}

// NewHandler creates a new Handler with its dependencies.
func NewHandler(repo store.Repository, coordinator TurnProcessor, analyzer AnalysisGenerator) *Handler {
	return &Handler{
		repo:         repo,
		coordinator:  coordinator,
		analyzer:     analyzer,
		sessionLocks: shared.NewKeyedMutex(),
	}
}

// RegisterRoutes attaches the API endpoints to the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/negotiate", h.Negotiate)
	r.Get("/sessions", h.ListSessions)
	r.Get("/analyze/{sessionID}", h.Analyze)
	r.Get("/scenarios", h.ListScenarios)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// writeError maps error classes to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errdefs.IsInvalidArgument(err):
		Error(w, http.StatusBadRequest, err.Error())
	case errdefs.IsNotFound(err):
		Error(w, http.StatusNotFound, err.Error())
	case errdefs.IsUnavailable(err):
		Error(w, http.StatusServiceUnavailable, err.Error())
	default:
		Error(w, http.StatusInternalServerError, err.Error())
	}
}
