// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/ashureev/negotium/internal/domain"
)

// SessionUpdate is a partial update applied to a stored session. Nil
// fields are left untouched; the update timestamp is always refreshed.
type SessionUpdate struct {
	Scenario *string
	History  []domain.ChatMessage
	Leverage *float64
	Analysis *domain.AnalysisReport
}

// Repository defines the interface for persisting negotiation sessions.
type Repository interface {
	// CreateSession stores a new session, assigns its id, and returns it.
	CreateSession(ctx context.Context, session *domain.NegotiationSession) (string, error)

	// UpdateSession applies a partial update to an existing session and
	// refreshes its timestamp. Returns a not-found error for unknown ids.
	UpdateSession(ctx context.Context, id string, update SessionUpdate) error

	// GetSession retrieves a session by id. Returns a not-found error
	// for unknown ids.
	GetSession(ctx context.Context, id string) (*domain.NegotiationSession, error)

	// ListRecent returns at most limit sessions, most recently updated
	// first.
	ListRecent(ctx context.Context, limit int) ([]*domain.NegotiationSession, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
