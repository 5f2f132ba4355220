package controller

import (
	"context"

	"github.com/agentx-labs/expertkit/internal/memory"
)

// MemoryLoader reads the session's stored context.
type MemoryLoader struct {
	Store memory.Store
}

func (l MemoryLoader) LoadContext(ctx context.Context, sessionID, _ string) (*QueryContext, error) {
	qc := &QueryContext{SessionID: sessionID}
	if sessionID == "" {
		return qc, nil
	}
	rec, err := memory.RetrieveContext(ctx, l.Store, sessionID)
	if err != nil {
		return nil, err
	}
	if rec != nil && string(rec.Value) != "null" {
		qc.Memory = rec.Value
	}
	return qc, nil
}

// MemoryRecorder stores each exchange under the session.
type MemoryRecorder struct {
	Store memory.Store
}

func (r MemoryRecorder) Remember(ctx context.Context, sessionID, query, response string) error {
	if sessionID == "" {
		return nil
	}
	return memory.StoreConversation(ctx, r.Store, sessionID, query, response)
}
