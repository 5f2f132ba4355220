package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message roles in a session history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in a session history.
type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// Sessions holds message history per session. It is safe for concurrent
// use.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string][]Message
}

// NewSessions returns an empty session set.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string][]Message)}
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// Append adds a message to the session, creating it if needed.
func (s *Sessions) Append(id string, msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = append(s.sessions[id], msg)
}

// History returns a copy of the session's messages and whether the session
// exists.
func (s *Sessions) History(id string) ([]Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out, true
}

// Len returns the number of sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
