package controller

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Fetcher is the web tool as seen by the runner.
type Fetcher interface {
	GetText(ctx context.Context, url string, timeout time.Duration) (string, error)
}

var urlPattern = regexp.MustCompile(`https?://[^\s<>"'()]+`)

// maxURLs caps the pages fetched for one query.
const maxURLs = 3

// URLPlanner plans a web fetch for each distinct URL in the query.
type URLPlanner struct{}

func (URLPlanner) Plan(ctx context.Context, query string, qc *QueryContext) (Plan, error) {
	urls := ExtractURLs(query)
	if len(urls) == 0 {
		return DirectPlanner{}.Plan(ctx, query, qc)
	}
	plan := Plan{Action: ActionUseTools}
	for _, u := range urls {
		plan.Tools = append(plan.Tools, ToolCall{Tool: ToolWeb, Input: u})
	}
	return plan, nil
}

// ExtractURLs returns up to three distinct http(s) URLs in order of
// appearance, without trailing punctuation.
func ExtractURLs(s string) []string {
	seen := map[string]bool{}
	var urls []string
	for _, m := range urlPattern.FindAllString(s, -1) {
		m = strings.TrimRight(m, ".,;:!?")
		if seen[m] {
			continue
		}
		seen[m] = true
		urls = append(urls, m)
		if len(urls) == maxURLs {
			break
		}
	}
	return urls
}

// WebRunner executes web tool calls sequentially.
type WebRunner struct {
	Web     Fetcher
	Timeout time.Duration
}

func (r WebRunner) RunTools(ctx context.Context, plan Plan) ([]ToolResult, error) {
	var results []ToolResult
	for _, call := range plan.Tools {
		if call.Tool != ToolWeb {
			results = append(results, ToolResult{Call: call, Err: errUnknownTool(call.Tool)})
			continue
		}
		out, err := r.Web.GetText(ctx, call.Input, r.Timeout)
		results = append(results, ToolResult{Call: call, Output: out, Err: err})
	}
	return results, nil
}

type errUnknownTool string

func (e errUnknownTool) Error() string { return "unknown tool " + string(e) }
