package controller

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Answerer is the agent as seen by the responder.
type Answerer interface {
	Run(ctx context.Context, query string) (string, error)
}

// NopLoader returns an empty context.
type NopLoader struct{}

func (NopLoader) LoadContext(_ context.Context, sessionID, _ string) (*QueryContext, error) {
	return &QueryContext{SessionID: sessionID}, nil
}

// DirectPlanner always answers without tools.
type DirectPlanner struct{}

func (DirectPlanner) Plan(context.Context, string, *QueryContext) (Plan, error) {
	return Plan{Action: ActionDirectResponse, Tools: []ToolCall{}}, nil
}

// NopRunner runs nothing.
type NopRunner struct{}

func (NopRunner) RunTools(context.Context, Plan) ([]ToolResult, error) {
	return nil, nil
}

// NopRecorder forgets everything.
type NopRecorder struct{}

func (NopRecorder) Remember(context.Context, string, string, string) error { return nil }

// maxToolOutput caps each tool result folded into the prompt.
const maxToolOutput = 8000

// AgentResponder asks the agent. With no context and no tool output the
// query is passed through unchanged.
type AgentResponder struct {
	Agent Answerer
}

func (r AgentResponder) Respond(ctx context.Context, query string, qc *QueryContext, results []ToolResult) (string, error) {
	return r.Agent.Run(ctx, BuildPrompt(query, qc, results))
}

// BuildPrompt folds session context and tool results into the query.
func BuildPrompt(query string, qc *QueryContext, results []ToolResult) string {
	hasMemory := qc != nil && len(qc.Memory) > 0
	if !hasMemory && len(results) == 0 {
		return query
	}

	var b strings.Builder
	b.WriteString(query)
	if hasMemory {
		b.WriteString("\n\nContext from earlier in this session:\n")
		b.Write(qc.Memory)
	}
	for _, r := range results {
		fmt.Fprintf(&b, "\n\nResult of %s %s:\n", r.Call.Tool, r.Call.Input)
		if r.Err != nil {
			fmt.Fprintf(&b, "(failed: %v)", r.Err)
			continue
		}
		out := r.Output
		if len(out) > maxToolOutput {
			out = truncateUTF8(out, maxToolOutput) + "\n[truncated]"
		}
		b.WriteString(out)
	}
	return b.String()
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
