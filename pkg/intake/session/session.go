package session

import (
	"context"
	"sync"

	"github.com/willem4130/thecareranchintake/pkg/intake/autosave"
	"github.com/willem4130/thecareranchintake/pkg/intake/types"
)

// Session owns the draft state of one user editing one page. The draft is
// advisory: it is seeded from the persisted responses when the page is
// opened and discarded when the session closes; the store stays the source
// of truth.
type Session struct {
	mu sync.Mutex

	UserID string
	PageID string

	draft      types.DraftState
	controller *autosave.Controller
}

func NewSession(
	userID string,
	pageID string,
	initial types.DraftState,
	save autosave.SaveFunc,
	config autosave.ControllerConfig,
) *Session {
	if initial == nil {
		initial = types.DraftState{}
	}
	return &Session{
		UserID:     userID,
		PageID:     pageID,
		draft:      initial.Clone(),
		controller: autosave.NewController(save, config),
	}
}

// SetAnswer applies a field edit and hands the new snapshot to the auto-save
// controller. The edit is visible to Answers immediately, it is never queued
// behind a save.
func (s *Session) SetAnswer(questionID string, value *types.AnswerValue) {
	s.mu.Lock()
	if value == nil {
		if _, exists := s.draft[questionID]; !exists {
			s.mu.Unlock()
			return
		}
		s.draft[questionID] = nil
	} else {
		s.draft[questionID] = value
	}
	snapshot := s.draft.Clone()
	s.mu.Unlock()

	s.controller.OnChange(snapshot)
}

// Apply merges a batch of edits (one auto-save request from the UI carries
// the whole page draft) and triggers a single change observation.
func (s *Session) Apply(values types.DraftState) {
	s.mu.Lock()
	for questionID, value := range values {
		s.draft[questionID] = value
	}
	snapshot := s.draft.Clone()
	s.mu.Unlock()

	s.controller.OnChange(snapshot)
}

func (s *Session) Answers() types.DraftState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

func (s *Session) SaveStatus() autosave.Status {
	return s.controller.Status()
}

// Flush persists the current draft immediately.
func (s *Session) Flush(ctx context.Context) error {
	return s.controller.Flush(ctx)
}

// Close flushes pending edits and tears the controller down; no status
// transition is observable afterwards.
func (s *Session) Close(ctx context.Context) error {
	err := s.controller.Flush(ctx)
	s.controller.Teardown()
	return err
}
