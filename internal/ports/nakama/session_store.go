package nakama

import (
	"fmt"
	"sync"

	"guandan/internal/app"
)

// SessionStore keeps one SafeSession per session ID.
type SessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*app.SafeSession
	maxSessions int
	newSession  func() (*app.Session, error)
}

// NewSessionStore creates a store whose sessions are built by newSession.
func NewSessionStore(maxSessions int, newSession func() (*app.Session, error)) *SessionStore {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &SessionStore{
		sessions:    make(map[string]*app.SafeSession),
		maxSessions: maxSessions,
		newSession:  newSession,
	}
}

// Create starts a new session owned by ownerID.
func (s *SessionStore) Create(ownerID string) (*app.SafeSession, error) {
	session, err := s.newSession()
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	safe := app.NewSafeSession(app.NewSessionID(), ownerID, session)

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) >= s.maxSessions {
		s.evictOldestLocked()
	}
	s.sessions[safe.ID] = safe
	return safe, nil
}

// Get returns the session with the given ID or app.ErrUnknownSession.
func (s *SessionStore) Get(id string) (*app.SafeSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	safe, ok := s.sessions[id]
	if !ok {
		return nil, app.ErrUnknownSession
	}
	return safe, nil
}

// Delete drops a session. Unknown IDs are ignored.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) evictOldestLocked() {
	var oldest *app.SafeSession
	for _, safe := range s.sessions {
		if oldest == nil || safe.LastUsed().Before(oldest.LastUsed()) {
			oldest = safe
		}
	}
	if oldest != nil {
		delete(s.sessions, oldest.ID)
	}
}
