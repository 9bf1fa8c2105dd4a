package session

import (
	"context"
	"sync"

	"github.com/willem4130/thecareranchintake/pkg/intake/autosave"
	"github.com/willem4130/thecareranchintake/pkg/intake/types"
)

type sessionKey struct {
	userID string
	pageID string
}

// Manager tracks the open editing sessions of a service instance. A user
// has at most one session per page; opening a page closes the sessions the
// user had on other pages, because a draft is exclusively owned by the page
// currently displayed.
type Manager struct {
	mu       sync.Mutex
	sessions map[sessionKey]*Session

	config autosave.ControllerConfig
}

func NewManager(config autosave.ControllerConfig) *Manager {
	return &Manager{
		sessions: map[sessionKey]*Session{},
		config:   config,
	}
}

// Open returns the user's session for the page, creating it with the given
// initial draft and save function if none is open yet. Sessions of the same
// user on other pages are flushed and closed.
func (m *Manager) Open(
	ctx context.Context,
	userID string,
	pageID string,
	initial types.DraftState,
	save autosave.SaveFunc,
) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, open := range m.sessions {
		if key.userID == userID && key.pageID != pageID {
			_ = open.Close(ctx)
			delete(m.sessions, key)
		}
	}

	key := sessionKey{userID: userID, pageID: pageID}
	if existing, ok := m.sessions[key]; ok {
		return existing
	}
	created := NewSession(userID, pageID, initial, save, m.config)
	m.sessions[key] = created
	return created
}

func (m *Manager) Get(userID string, pageID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	open, ok := m.sessions[sessionKey{userID: userID, pageID: pageID}]
	return open, ok
}

// Close flushes and removes one session.
func (m *Manager) Close(ctx context.Context, userID string, pageID string) error {
	m.mu.Lock()
	open, ok := m.sessions[sessionKey{userID: userID, pageID: pageID}]
	if ok {
		delete(m.sessions, sessionKey{userID: userID, pageID: pageID})
	}
	m.mu.Unlock()

	if !ok {
		return nil
	}
	return open.Close(ctx)
}

// CloseAll tears down every open session, used on service shutdown.
func (m *Manager) CloseAll(ctx context.Context) {
	m.mu.Lock()
	open := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		open = append(open, s)
	}
	m.sessions = map[sessionKey]*Session{}
	m.mu.Unlock()

	for _, s := range open {
		_ = s.Close(ctx)
	}
}

// CloseUserSessions closes every session of one user, used on logout.
func (m *Manager) CloseUserSessions(ctx context.Context, userID string) {
	m.mu.Lock()
	open := []*Session{}
	for key, s := range m.sessions {
		if key.userID == userID {
			open = append(open, s)
			delete(m.sessions, key)
		}
	}
	m.mu.Unlock()

	for _, s := range open {
		_ = s.Close(ctx)
	}
}
