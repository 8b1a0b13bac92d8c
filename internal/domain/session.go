// Package domain contains core domain types for the Negotium backend.
package domain

import (
	"time"
)

// Message roles used on the wire, in stored history, and in model transcripts.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single role-tagged message in a negotiation transcript.
// Messages are immutable once created; their order within a session is
// chronological and must survive every read/write round-trip.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NegotiationSession is the durable aggregate for one negotiation: the
// scenario, the accumulated transcript, the current leverage value, and
// the analysis report once it has been generated.
type NegotiationSession struct {
	ID        string          `json:"id"`
	Scenario  string          `json:"scenario"`
	History   []ChatMessage   `json:"history"`
	Leverage  float64         `json:"leverage"`
	Analysis  *AnalysisReport `json:"analysis,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// HasAnalysis returns true once an analysis report has been cached on
// the session. A cached report is never recomputed.
func (s *NegotiationSession) HasAnalysis() bool {
	return s.Analysis != nil
}
