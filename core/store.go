package orchestration

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrDuplicateSession = errors.New("session already exists")
	ErrUnknownSession   = errors.New("unknown session")
)

// SessionStore tracks live call sessions by ID. All operations are
// serialized; concurrent creates for the same ID yield exactly one session
// and [ErrDuplicateSession] for the rest.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*CallSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]*CallSession{}}
}

func (s *SessionStore) Create(id, callerPhone string) (*CallSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; ok {
		return nil, ErrDuplicateSession
	}

	session := newCallSession(id, callerPhone)
	s.sessions[id] = session
	return session, nil
}

func (s *SessionStore) Get(id string) (*CallSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrUnknownSession
	}
	return session, nil
}

// Remove drops the session with the given ID. Removing an absent session is
// a no-op so teardown paths can race benignly.
func (s *SessionStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// IdleSessions returns sessions whose last recorded activity is older than
// the cutoff. Used by reapers to flag stalled calls.
func (s *SessionStore) IdleSessions(cutoff time.Time) []*CallSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	var idle []*CallSession
	for _, session := range s.sessions {
		if session.LastActivity().Before(cutoff) {
			idle = append(idle, session)
		}
	}
	return idle
}
