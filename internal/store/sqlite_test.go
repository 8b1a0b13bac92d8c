package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/containerd/errdefs"

	"github.com/ashureev/negotium/internal/domain"
)

func newTestStore(t *testing.T) Repository {
	t.Helper()
	repo, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return repo
}

func testSession() *domain.NegotiationSession {
	return &domain.NegotiationSession{
		Scenario: "salary negotiation",
		History: []domain.ChatMessage{
			{Role: domain.RoleUser, Content: "I want a raise."},
			{Role: domain.RoleAssistant, Content: "The budget is tight."},
			{Role: domain.RoleUser, Content: "I deserve one regardless."},
		},
		Leverage: 0.55,
	}
}

func TestCreateSessionRoundTrip(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	session := testSession()
	id, err := repo.CreateSession(ctx, session)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if id == "" {
		t.Fatal("Expected non-empty id")
	}
	if session.ID != id {
		t.Errorf("Expected session.ID %q, got %q", id, session.ID)
	}

	got, err := repo.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Scenario != session.Scenario {
		t.Errorf("Expected scenario %q, got %q", session.Scenario, got.Scenario)
	}
	if !reflect.DeepEqual(got.History, session.History) {
		t.Errorf("History not preserved message-for-message:\nwant %+v\ngot  %+v", session.History, got.History)
	}
	if got.Leverage != session.Leverage {
		t.Errorf("Expected leverage %v, got %v", session.Leverage, got.Leverage)
	}
	if got.Analysis != nil {
		t.Error("Expected no analysis on a fresh session")
	}
}

func TestGetSessionNotFound(t *testing.T) {
	repo := newTestStore(t)

	_, err := repo.GetSession(context.Background(), "b4b5e3f0-0000-0000-0000-000000000000")
	if !errdefs.IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestUpdateSessionPartialMerge(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	session := testSession()
	id, err := repo.CreateSession(ctx, session)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	// Update leverage only; scenario and history must survive.
	newLeverage := 0.6
	if err := repo.UpdateSession(ctx, id, SessionUpdate{Leverage: &newLeverage}); err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}

	got, err := repo.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Leverage != newLeverage {
		t.Errorf("Expected leverage %v, got %v", newLeverage, got.Leverage)
	}
	if got.Scenario != session.Scenario {
		t.Errorf("Scenario changed by partial update: %q", got.Scenario)
	}
	if !reflect.DeepEqual(got.History, session.History) {
		t.Errorf("History changed by partial update: %+v", got.History)
	}
}

func TestUpdateSessionRefreshesTimestamp(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	session := testSession()
	id, err := repo.CreateSession(ctx, session)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	before, err := repo.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}

	time.Sleep(2 * time.Millisecond)
	lev := 0.5
	if err := repo.UpdateSession(ctx, id, SessionUpdate{Leverage: &lev}); err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}

	after, err := repo.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("Expected updated_at to advance: before %v, after %v", before.UpdatedAt, after.UpdatedAt)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("created_at must not change on update: before %v, after %v", before.CreatedAt, after.CreatedAt)
	}
}

func TestUpdateSessionNotFound(t *testing.T) {
	repo := newTestStore(t)

	lev := 0.5
	err := repo.UpdateSession(context.Background(), "b4b5e3f0-0000-0000-0000-000000000000", SessionUpdate{Leverage: &lev})
	if !errdefs.IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestUpdateSessionStoresAnalysis(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	id, err := repo.CreateSession(ctx, testSession())
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	report := domain.AnalysisReport{
		Summary:   "Held firm under pressure. Could improve anchoring.",
		Outcome:   domain.OutcomeSuccess,
		Strengths: []domain.AnalysisPoint{{Point: "Persistence", Explanation: "Did not fold at the first no."}},
		Mistakes:  []domain.AnalysisPoint{},
		SkillGaps: []string{"Anchoring"},
	}
	if err := repo.UpdateSession(ctx, id, SessionUpdate{Analysis: &report}); err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}

	got, err := repo.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Analysis == nil {
		t.Fatal("Expected analysis to be persisted")
	}
	if !reflect.DeepEqual(*got.Analysis, report) {
		t.Errorf("Analysis not preserved:\nwant %+v\ngot  %+v", report, *got.Analysis)
	}
}

func TestListRecentOrderAndLimit(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		session := testSession()
		id, err := repo.CreateSession(ctx, session)
		if err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		ids = append(ids, id)
		time.Sleep(2 * time.Millisecond)
	}

	sessions, err := repo.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if !sessions[i-1].UpdatedAt.After(sessions[i].UpdatedAt) {
			t.Errorf("Sessions not strictly descending by timestamp at index %d", i)
		}
	}
	if sessions[0].ID != ids[len(ids)-1] {
		t.Errorf("Expected most recent session %q first, got %q", ids[len(ids)-1], sessions[0].ID)
	}
}

func TestListRecentEmpty(t *testing.T) {
	repo := newTestStore(t)

	sessions, err := repo.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("Expected empty list, got %d sessions", len(sessions))
	}
}
