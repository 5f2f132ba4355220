package controller

import (
	"context"
	"encoding/json"
)

// Plan actions.
const (
	ActionDirectResponse = "direct_response"
	ActionUseTools       = "use_tools"
)

// Tool names.
const ToolWeb = "web"

// QueryContext is what the loader knows about a session before answering.
type QueryContext struct {
	SessionID string
	Memory    json.RawMessage // stored session context, if any
}

// ToolCall is one planned tool invocation.
type ToolCall struct {
	Tool  string
	Input string
}

// Plan is the planner's decision for a query.
type Plan struct {
	Action string
	Tools  []ToolCall
}

// ToolResult is the outcome of one ToolCall. A failed call carries Err and
// does not stop the query.
type ToolResult struct {
	Call   ToolCall
	Output string
	Err    error
}

// ContextLoader loads per-session context.
type ContextLoader interface {
	LoadContext(ctx context.Context, sessionID, query string) (*QueryContext, error)
}

// Planner decides which tools to run.
type Planner interface {
	Plan(ctx context.Context, query string, qc *QueryContext) (Plan, error)
}

// ToolRunner executes a plan.
type ToolRunner interface {
	RunTools(ctx context.Context, plan Plan) ([]ToolResult, error)
}

// Responder produces the answer.
type Responder interface {
	Respond(ctx context.Context, query string, qc *QueryContext, results []ToolResult) (string, error)
}

// Recorder persists the exchange.
type Recorder interface {
	Remember(ctx context.Context, sessionID, query, response string) error
}
