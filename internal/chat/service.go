package chat

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Processor answers one query within a session.
type Processor interface {
	ProcessQuery(ctx context.Context, query, sessionID string) (string, error)
}

// UI carries the page title and icon shown by both front ends.
type UI struct {
	Title string
	Icon  string
}

// Heading returns "<icon> <title>", or just the title when no icon is set.
func (u UI) Heading() string {
	if u.Icon == "" {
		return u.Title
	}
	return u.Icon + " " + u.Title
}

// Service records conversations and forwards queries to a Processor.
type Service struct {
	proc     Processor
	sessions *Sessions
	log      zerolog.Logger
	now      func() time.Time
}

// NewService returns a Service over proc.
func NewService(proc Processor, log zerolog.Logger) *Service {
	return &Service{proc: proc, sessions: NewSessions(), log: log, now: time.Now}
}

// Sessions exposes the session histories.
func (s *Service) Sessions() *Sessions { return s.sessions }

// Ask records query, asks the processor and records the reply. When the
// processor fails the reply is "An error occurred: <err>" and err is
// returned alongside it.
func (s *Service) Ask(ctx context.Context, sessionID, query string) (string, error) {
	s.sessions.Append(sessionID, Message{Role: RoleUser, Content: query, Time: s.now()})

	reply, err := s.proc.ProcessQuery(ctx, query, sessionID)
	if err != nil {
		s.log.Error().Err(err).Str("session", sessionID).Msg("query failed")
		reply = ErrorReply(err)
	}

	s.sessions.Append(sessionID, Message{Role: RoleAssistant, Content: reply, Time: s.now()})
	return reply, err
}

// ErrorReply formats err the way it is shown to the user.
func ErrorReply(err error) string {
	return "An error occurred: " + err.Error()
}
