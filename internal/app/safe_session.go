package app

import (
	"sync"
	"sync/atomic"
	"time"
)

// SafeSession serializes every call into a Session behind one mutex.
type SafeSession struct {
	ID      string
	OwnerID string

	mu      sync.Mutex
	session *Session
	// lastUsed is unix nanoseconds, readable without waiting on mu.
	lastUsed atomic.Int64
}

// NewSafeSession wraps session for owner.
func NewSafeSession(id, ownerID string, session *Session) *SafeSession {
	s := &SafeSession{
		ID:      id,
		OwnerID: ownerID,
		session: session,
	}
	s.lastUsed.Store(time.Now().UnixNano())
	return s
}

// Do runs fn with exclusive access to the session.
func (s *SafeSession) Do(fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed.Store(time.Now().UnixNano())
	return fn(s.session)
}

// LastUsed returns when the session was last accessed through Do. It does not
// wait for a Do in progress.
func (s *SafeSession) LastUsed() time.Time {
	return time.Unix(0, s.lastUsed.Load())
}
