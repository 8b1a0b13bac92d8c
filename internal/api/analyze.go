package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ashureev/negotium/internal/domain"
	"github.com/ashureev/negotium/internal/store"
)

// AnalysisResponse is the body of GET /analyze/{id}: the report plus
// the transcript it was generated from.
type AnalysisResponse struct {
	domain.AnalysisReport
	ChatHistory []domain.ChatMessage `json:"chat_history"`
}

// Analyze returns the session's analysis report, generating and caching
// it on first request. The generator never fails; a provider or parse
// failure yields the fixed fallback report, which is cached like any
// other result.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	// Id syntax is checked before any store access.
	if _, err := uuid.Parse(sessionID); err != nil {
		Error(w, http.StatusBadRequest, "invalid session id")
		return
	}

	// Hold the per-id lock across the read-generate-write cycle so two
	// concurrent requests cannot both invoke the generator.
	unlock := h.sessionLocks.Lock(sessionID)
	defer unlock()

	session, err := h.repo.GetSession(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}

	if session.HasAnalysis() {
		JSON(w, http.StatusOK, AnalysisResponse{
			AnalysisReport: *session.Analysis,
			ChatHistory:    session.History,
		})
		return
	}

	report, fellBack := h.analyzer.Generate(r.Context(), session.Scenario, session.History)
	if fellBack {
		slog.Warn("analysis fell back to fixed report", "session_id", sessionID)
	}

	if err := h.repo.UpdateSession(r.Context(), sessionID, store.SessionUpdate{Analysis: &report}); err != nil {
		writeError(w, err)
		return
	}

	JSON(w, http.StatusOK, AnalysisResponse{
		AnalysisReport: report,
		ChatHistory:    session.History,
	})
}
