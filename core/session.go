package orchestration

import (
	"sync"
	"time"
)

type Speaker string

const (
	SpeakerCaller Speaker = "USER"
	SpeakerAgent  Speaker = "ASSISTANT"
)

// Turn is one finalized conversation entry. Turns are append-only; their
// order reconstructs the conversation.
type Turn struct {
	Speaker   Speaker
	Text      string
	Timestamp time.Time
}

type SessionState string

const (
	StateGreeting        SessionState = "greeting"
	StateCollectingName  SessionState = "collecting_name"
	StateConfirmingName  SessionState = "confirming_name"
	StateCollectingEmail SessionState = "collecting_email"
	StateConfirmingEmail SessionState = "confirming_email"
	StateClosing         SessionState = "closing"
	StateEnded           SessionState = "ended"
)

type CompletionStatus string

const (
	CompletionComplete       CompletionStatus = "complete"
	CompletionPartialTimeout CompletionStatus = "partial_timeout"
	CompletionPartialError   CompletionStatus = "partial_error"
)

// CallSession is the live record of one call. It is mutated exclusively by
// the session's owning orchestrator; the mutex only guards point-in-time
// snapshots taken from other goroutines.
type CallSession struct {
	ID          string
	CallerPhone string
	StartedAt   time.Time

	mu sync.RWMutex

	state SessionState
	turns []Turn

	// pendingUtterance accumulates not-yet-settled recognition fragments for
	// the current caller turn. Each interim replaces it wholesale.
	pendingUtterance string

	// pendingName/pendingEmail hold candidate values awaiting confirmation.
	pendingName  string
	pendingEmail string

	// extractedName/extractedEmail are committed only once the caller has
	// affirmed the corresponding confirmation question.
	extractedName  string
	extractedEmail string

	retries      map[SessionState]int
	completion   CompletionStatus
	lastActivity time.Time
}

func newCallSession(id, callerPhone string) *CallSession {
	now := time.Now()
	return &CallSession{
		ID:           id,
		CallerPhone:  callerPhone,
		StartedAt:    now,
		state:        StateGreeting,
		retries:      map[SessionState]int{},
		lastActivity: now,
	}
}

func (s *CallSession) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *CallSession) setState(state SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *CallSession) appendTurn(speaker Speaker, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, Turn{Speaker: speaker, Text: text, Timestamp: time.Now()})
	s.lastActivity = time.Now()
}

func (s *CallSession) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := make([]Turn, len(s.turns))
	copy(turns, s.turns)
	return turns
}

func (s *CallSession) setPendingUtterance(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingUtterance = text
	s.lastActivity = time.Now()
}

// takePendingUtterance returns the buffered fragment and clears the buffer.
func (s *CallSession) takePendingUtterance() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	text := s.pendingUtterance
	s.pendingUtterance = ""
	return text
}

func (s *CallSession) PendingUtterance() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingUtterance
}

func (s *CallSession) setPendingName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingName = name
}

func (s *CallSession) setPendingEmail(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingEmail = email
}

// commitName promotes the pending name to the extracted field. Only valid
// once the caller has affirmed the name confirmation question.
func (s *CallSession) commitName() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extractedName = s.pendingName
	s.pendingName = ""
}

func (s *CallSession) commitEmail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extractedEmail = s.pendingEmail
	s.pendingEmail = ""
}

func (s *CallSession) ExtractedName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.extractedName
}

func (s *CallSession) ExtractedEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.extractedEmail
}

func (s *CallSession) bumpRetry(state SessionState) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retries[state]++
	return s.retries[state]
}

func (s *CallSession) resetRetries(state SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.retries, state)
}

func (s *CallSession) setCompletion(status CompletionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completion == "" {
		s.completion = status
	}
}

func (s *CallSession) Completion() CompletionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completion
}

func (s *CallSession) LastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActivity
}

// dialogueSnapshot captures everything a cancelled outbound delivery must
// roll back: the state machine position, candidate and committed fields, and
// retry counters. Turn history is not part of it; turns are append-only.
type dialogueSnapshot struct {
	state          SessionState
	pendingName    string
	pendingEmail   string
	extractedName  string
	extractedEmail string
	completion     CompletionStatus
	retries        map[SessionState]int
}

func (s *CallSession) dialogueSnapshot() dialogueSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	retries := make(map[SessionState]int, len(s.retries))
	for state, count := range s.retries {
		retries[state] = count
	}

	return dialogueSnapshot{
		state:          s.state,
		pendingName:    s.pendingName,
		pendingEmail:   s.pendingEmail,
		extractedName:  s.extractedName,
		extractedEmail: s.extractedEmail,
		completion:     s.completion,
		retries:        retries,
	}
}

func (s *CallSession) restore(snapshot dialogueSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = snapshot.state
	s.pendingName = snapshot.pendingName
	s.pendingEmail = snapshot.pendingEmail
	s.extractedName = snapshot.extractedName
	s.extractedEmail = snapshot.extractedEmail
	s.completion = snapshot.completion
	s.retries = make(map[SessionState]int, len(snapshot.retries))
	for state, count := range snapshot.retries {
		s.retries[state] = count
	}
}

// SessionSnapshot is a point-in-time view of a call session.
type SessionSnapshot struct {
	ID             string
	CallerPhone    string
	State          SessionState
	Turns          []Turn
	ExtractedName  string
	ExtractedEmail string
	Completion     CompletionStatus
	StartedAt      time.Time
}

func (s *CallSession) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := make([]Turn, len(s.turns))
	copy(turns, s.turns)

	return SessionSnapshot{
		ID:             s.ID,
		CallerPhone:    s.CallerPhone,
		State:          s.state,
		Turns:          turns,
		ExtractedName:  s.extractedName,
		ExtractedEmail: s.extractedEmail,
		Completion:     s.completion,
		StartedAt:      s.StartedAt,
	}
}
