package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/willem4130/thecareranchintake/pkg/intake/autosave"
	"github.com/willem4130/thecareranchintake/pkg/intake/types"
)

const (
	testDebounce = 20 * time.Millisecond
	settleWait   = 120 * time.Millisecond
)

type draftStore struct {
	mu    sync.Mutex
	calls int
	last  types.DraftState
}

func (s *draftStore) save(ctx context.Context, snapshot types.DraftState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = snapshot
	return nil
}

func (s *draftStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *draftStore) lastSnapshot() types.DraftState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func testConfig() autosave.ControllerConfig {
	return autosave.ControllerConfig{
		DebounceDelay:        testDebounce,
		SavedDisplayDuration: 40 * time.Millisecond,
		ErrorDisplayDuration: 40 * time.Millisecond,
	}
}

func TestSessionSetAnswer(t *testing.T) {
	store := &draftStore{}
	sess := NewSession("u1", "p1", nil, store.save, testConfig())
	defer sess.Close(context.Background())

	sess.SetAnswer("q1", types.TextAnswer("hello"))

	answers := sess.Answers()
	if answers["q1"] == nil || *answers["q1"].Text != "hello" {
		t.Errorf("expected the edit to be visible immediately, got %+v", answers)
	}

	time.Sleep(settleWait)
	if store.callCount() != 1 {
		t.Errorf("expected 1 save, got %d", store.callCount())
	}
}

func TestSessionClearAnswer(t *testing.T) {
	store := &draftStore{}
	initial := types.DraftState{"q1": types.TextAnswer("keep me")}
	sess := NewSession("u1", "p1", initial, store.save, testConfig())
	defer sess.Close(context.Background())

	sess.SetAnswer("q1", nil)
	time.Sleep(settleWait)

	snapshot := store.lastSnapshot()
	if snapshot == nil {
		t.Fatal("expected a save")
	}
	value, present := snapshot["q1"]
	if !present || value != nil {
		t.Errorf("expected the cleared answer to be saved as nil, got %+v", snapshot)
	}
}

func TestSessionClearUnknownQuestionIsNoop(t *testing.T) {
	store := &draftStore{}
	sess := NewSession("u1", "p1", nil, store.save, testConfig())
	defer sess.Close(context.Background())

	sess.SetAnswer("never-set", nil)
	time.Sleep(settleWait)

	if store.callCount() != 0 {
		t.Errorf("expected no save for clearing an unset answer, got %d", store.callCount())
	}
}

func TestSessionApplyBatch(t *testing.T) {
	store := &draftStore{}
	sess := NewSession("u1", "p1", types.DraftState{"q1": types.TextAnswer("old")}, store.save, testConfig())
	defer sess.Close(context.Background())

	sess.Apply(types.DraftState{
		"q1": types.TextAnswer("new"),
		"q2": types.NumberAnswer(7),
	})

	answers := sess.Answers()
	if *answers["q1"].Text != "new" || *answers["q2"].Number != 7 {
		t.Errorf("unexpected merged draft: %+v", answers)
	}

	time.Sleep(settleWait)
	if store.callCount() != 1 {
		t.Errorf("expected a single save for the batch, got %d", store.callCount())
	}
}

func TestSessionFlush(t *testing.T) {
	store := &draftStore{}
	sess := NewSession("u1", "p1", nil, store.save, testConfig())
	defer sess.Close(context.Background())

	sess.SetAnswer("q1", types.BooleanAnswer(true))
	if err := sess.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected flush error: %s", err)
	}
	if store.callCount() != 1 {
		t.Errorf("expected 1 save after flush, got %d", store.callCount())
	}
}

func TestManagerOpenReusesSession(t *testing.T) {
	store := &draftStore{}
	manager := NewManager(testConfig())
	defer manager.CloseAll(context.Background())

	first := manager.Open(context.Background(), "u1", "p1", nil, store.save)
	second := manager.Open(context.Background(), "u1", "p1", nil, store.save)
	if first != second {
		t.Error("expected the open session to be reused")
	}
}

func TestManagerOpenClosesOtherPages(t *testing.T) {
	store := &draftStore{}
	manager := NewManager(testConfig())
	defer manager.CloseAll(context.Background())

	page1 := manager.Open(context.Background(), "u1", "p1", nil, store.save)
	page1.SetAnswer("q1", types.TextAnswer("draft on page 1"))

	manager.Open(context.Background(), "u1", "p2", nil, store.save)

	if _, found := manager.Get("u1", "p1"); found {
		t.Error("expected the page 1 session to be closed")
	}
	if _, found := manager.Get("u1", "p2"); !found {
		t.Error("expected the page 2 session to be open")
	}

	// closing page 1 flushed its pending draft
	snapshot := store.lastSnapshot()
	if snapshot == nil || snapshot["q1"] == nil || *snapshot["q1"].Text != "draft on page 1" {
		t.Errorf("expected the pending draft of page 1 to be flushed, got %+v", snapshot)
	}
}

func TestManagerOpenKeepsOtherUsers(t *testing.T) {
	store := &draftStore{}
	manager := NewManager(testConfig())
	defer manager.CloseAll(context.Background())

	manager.Open(context.Background(), "u1", "p1", nil, store.save)
	manager.Open(context.Background(), "u2", "p2", nil, store.save)

	if _, found := manager.Get("u1", "p1"); !found {
		t.Error("expected u1's session to stay open")
	}
	if _, found := manager.Get("u2", "p2"); !found {
		t.Error("expected u2's session to stay open")
	}
}

func TestManagerCloseUserSessions(t *testing.T) {
	store := &draftStore{}
	manager := NewManager(testConfig())
	defer manager.CloseAll(context.Background())

	sess := manager.Open(context.Background(), "u1", "p1", nil, store.save)
	sess.SetAnswer("q1", types.TextAnswer("pending"))
	manager.Open(context.Background(), "u2", "p1", nil, store.save)

	manager.CloseUserSessions(context.Background(), "u1")

	if _, found := manager.Get("u1", "p1"); found {
		t.Error("expected u1's session to be closed")
	}
	if _, found := manager.Get("u2", "p1"); !found {
		t.Error("expected u2's session to stay open")
	}
	if store.callCount() != 1 {
		t.Errorf("expected the pending draft to be flushed on close, got %d saves", store.callCount())
	}
}
