package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/containerd/errdefs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ashureev/negotium/internal/domain"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		scenario TEXT NOT NULL,
		history_json TEXT NOT NULL,
		leverage REAL NOT NULL,
		analysis_json TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession stores a new session, assigns its id, and returns it.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *domain.NegotiationSession) (string, error) {
	historyJSON, err := json.Marshal(session.History)
	if err != nil {
		return "", fmt.Errorf("marshal history: %w", err)
	}

	var analysisJSON interface{}
	if session.Analysis != nil {
		b, err := json.Marshal(session.Analysis)
		if err != nil {
			return "", fmt.Errorf("marshal analysis: %w", err)
		}
		analysisJSON = string(b)
	}

	id := uuid.NewString()
	// Nanosecond timestamps keep the recency ordering strict even for
	// sessions created within the same second.
	now := time.Now().UTC()

	query := `
	INSERT INTO sessions (id, scenario, history_json, leverage, analysis_json, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		id, session.Scenario, string(historyJSON), session.Leverage,
		analysisJSON, now.UnixNano(), now.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}

	session.ID = id
	session.CreatedAt = now
	session.UpdatedAt = now
	return id, nil
}

// UpdateSession applies a partial update to an existing session.
func (s *SQLiteStore) UpdateSession(ctx context.Context, id string, update SessionUpdate) error {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC().UnixNano()}

	if update.Scenario != nil {
		sets = append(sets, "scenario = ?")
		args = append(args, *update.Scenario)
	}
	if update.History != nil {
		b, err := json.Marshal(update.History)
		if err != nil {
			return fmt.Errorf("marshal history: %w", err)
		}
		sets = append(sets, "history_json = ?")
		args = append(args, string(b))
	}
	if update.Leverage != nil {
		sets = append(sets, "leverage = ?")
		args = append(args, *update.Leverage)
	}
	if update.Analysis != nil {
		b, err := json.Marshal(update.Analysis)
		if err != nil {
			return fmt.Errorf("marshal analysis: %w", err)
		}
		sets = append(sets, "analysis_json = ?")
		args = append(args, string(b))
	}

	args = append(args, id)
	query := "UPDATE sessions SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, errdefs.ErrNotFound)
	}
	return nil
}

// GetSession retrieves a session by id.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*domain.NegotiationSession, error) {
	query := `
		SELECT id, scenario, history_json, leverage, analysis_json, created_at, updated_at
		FROM sessions WHERE id = ?`

	session, err := scanSession(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, errdefs.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// ListRecent returns at most limit sessions, most recently updated first.
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]*domain.NegotiationSession, error) {
	query := `
		SELECT id, scenario, history_json, leverage, analysis_json, created_at, updated_at
		FROM sessions ORDER BY updated_at DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]*domain.NegotiationSession, 0, limit)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*domain.NegotiationSession, error) {
	var session domain.NegotiationSession
	var historyJSON string
	var analysisJSON sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(
		&session.ID, &session.Scenario, &historyJSON, &session.Leverage,
		&analysisJSON, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan session row: %w", err)
	}

	if err := json.Unmarshal([]byte(historyJSON), &session.History); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}
	if analysisJSON.Valid {
		var report domain.AnalysisReport
		if err := json.Unmarshal([]byte(analysisJSON.String), &report); err != nil {
			return nil, fmt.Errorf("unmarshal analysis: %w", err)
		}
		session.Analysis = &report
	}

	session.CreatedAt = time.Unix(0, createdAt).UTC()
	session.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return &session, nil
}
