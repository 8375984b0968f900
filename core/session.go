package core

import (
	"sync"
	"time"
)

// Status is the lifecycle state of a session. Terminal statuses never revert
// to an active one.
type Status string

const (
	// StatusInitializing is the state before the first speaker is resolved.
	StatusInitializing Status = "INITIALIZING"
	// StatusActive is the state while the exchange is running.
	StatusActive Status = "ACTIVE"
	// StatusTerminated means a termination signal ended the exchange.
	StatusTerminated Status = "TERMINATED"
	// StatusMaxRoundsReached means the round ceiling ended the exchange.
	StatusMaxRoundsReached Status = "MAX_ROUNDS_REACHED"
	// StatusError means a turn failed; committed history remains intact.
	StatusError Status = "ERROR"
)

// Terminal reports whether the status is one of the terminal states.
func (s Status) Terminal() bool {
	switch s {
	case StatusTerminated, StatusMaxRoundsReached, StatusError:
		return true
	default:
		return false
	}
}

// Session is one bounded multi-turn exchange between the learner and the
// expert roster. It tracks round count, current speaker and an append-only
// message history. It is safe for concurrent access.
//
// Contract:
//   - History returns a defensive copy to avoid external mutation
//   - messages are only appended, never mutated in place
//   - a terminal Status never transitions back to an active one
//   - RoundCount never exceeds EffectiveMaxRounds
type Session struct {
	ID                 string
	RoundCount         int
	EffectiveMaxRounds int
	CurrentSpeaker     string
	Status             Status
	Created            time.Time
	Updated            time.Time

	messages []Message
	mu       sync.RWMutex
}

// NewSession creates a new session in INITIALIZING state.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{ID: id, Status: StatusInitializing, Created: now, Updated: now}
}

// AddMessage appends a message to the history updating the Updated timestamp.
func (s *Session) AddMessage(m Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
	s.CurrentSpeaker = m.Speaker
	s.Updated = time.Now().UTC()
}

// History returns a defensive copy of the full message history.
func (s *Session) History() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := make([]Message, len(s.messages))
	copy(msgs, s.messages)
	return msgs
}

// Len returns the number of messages in the history.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// SetStatus transitions the session status. Transitions out of a terminal
// state are ignored so a finished session can never re-activate.
func (s *Session) SetStatus(st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Status.Terminal() {
		return
	}
	s.Status = st
	s.Updated = time.Now().UTC()
}

// NextRound increments the round count and returns the new value.
func (s *Session) NextRound() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RoundCount++
	s.Updated = time.Now().UTC()
	return s.RoundCount
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := &Session{
		ID:                 s.ID,
		RoundCount:         s.RoundCount,
		EffectiveMaxRounds: s.EffectiveMaxRounds,
		CurrentSpeaker:     s.CurrentSpeaker,
		Status:             s.Status,
		Created:            s.Created,
		Updated:            s.Updated,
		messages:           make([]Message, len(s.messages)),
	}
	copy(clone.messages, s.messages)
	return clone
}

// SessionStore persists sessions and their evolving message history.
type SessionStore interface {
	Create(id string) (*Session, error)
	Get(id string) (*Session, error)
	Append(sessionID string, msg Message) error
	SetStatus(sessionID string, st Status) error
	SetCeiling(sessionID string, maxRounds int) error
	IncrementRound(sessionID string) (int, error)
}
