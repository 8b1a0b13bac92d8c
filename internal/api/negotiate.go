package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/ashureev/negotium/internal/domain"
	"github.com/ashureev/negotium/internal/store"
)

// NegotiateRequest is the body of POST /negotiate.
type NegotiateRequest struct {
	Scenario        string               `json:"scenario"`
	History         []domain.ChatMessage `json:"history"`
	CurrentLeverage float64              `json:"current_leverage"`
	SessionID       string               `json:"session_id,omitempty"`
}

// NegotiateResponse is the result of one processed turn.
type NegotiateResponse struct {
	OpponentReply string  `json:"opponent_reply"`
	CoachTip      string  `json:"coach_tip"`
	NewLeverage   float64 `json:"new_leverage"`
	NewMood       string  `json:"new_mood"`
	SessionID     string  `json:"session_id"`
}

// Negotiate runs one turn of the simulation and persists the result.
// The stored history is exactly the caller-supplied transcript; the
// opponent reply is returned but not written back, since clients
// accumulate the transcript themselves and echo it on the next turn.
func (h *Handler) Negotiate(w http.ResponseWriter, r *http.Request) {
	var req NegotiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID != "" {
		if _, err := uuid.Parse(req.SessionID); err != nil {
			Error(w, http.StatusBadRequest, "invalid session id")
			return
		}
	}

	result, err := h.coordinator.ProcessTurn(r.Context(), req.Scenario, req.History, req.CurrentLeverage)
	if err != nil {
		writeError(w, err)
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		session := &domain.NegotiationSession{
			Scenario: req.Scenario,
			History:  req.History,
			Leverage: result.NewLeverage,
		}
		sessionID, err = h.repo.CreateSession(r.Context(), session)
		if err != nil {
			writeError(w, fmt.Errorf("create session: %w", err))
			return
		}
	} else {
		unlock := h.sessionLocks.Lock(sessionID)
		err = h.repo.UpdateSession(r.Context(), sessionID, store.SessionUpdate{
			Scenario: &req.Scenario,
			History:  req.History,
			Leverage: &result.NewLeverage,
		})
		unlock()
		if err != nil {
			writeError(w, err)
			return
		}
	}

	JSON(w, http.StatusOK, NegotiateResponse{
		OpponentReply: result.OpponentReply,
		CoachTip:      result.CoachTip,
		NewLeverage:   result.NewLeverage,
		NewMood:       result.Mood,
		SessionID:     sessionID,
	})
}
