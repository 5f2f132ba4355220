package memory

import (
	"context"
	stderrors "errors"
	"time"
)

// Key suffixes used by the conversation helpers.
const (
	contextSuffix      = "_context"
	conversationSuffix = "_conversation"
)

// Exchange is one stored query/response pair.
type Exchange struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// ContextKey returns the key holding a session's context.
func ContextKey(sessionID string) string { return sessionID + contextSuffix }

// ConversationKey returns the key holding a session's last exchange.
func ConversationKey(sessionID string) string { return sessionID + conversationSuffix }

// RetrieveContext returns the session's stored context, or nil when none
// has been saved.
func RetrieveContext(ctx context.Context, s Store, sessionID string) (*Record, error) {
	rec, err := s.Load(ctx, ContextKey(sessionID))
	if stderrors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return rec, err
}

// StoreConversation records the latest exchange for the session, replacing
// the previous one.
func StoreConversation(ctx context.Context, s Store, sessionID, query, response string) error {
	return s.Save(ctx, ConversationKey(sessionID), Exchange{
		Query:     query,
		Response:  response,
		Timestamp: time.Now().UTC().Truncate(time.Second),
	})
}
