package scaffold

import (
	"fmt"
	"io"

	"github.com/agentx-labs/expertkit/internal/branding"
	"github.com/agentx-labs/expertkit/internal/paths"
)

// NextSteps returns the follow-up commands printed after a successful run.
// Comment lines start with "#".
func NextSteps(r *Result) []string {
	return []string{
		"cd " + paths.AbbreviateHome(r.ProjectDir),
		"# Add your OpenAI API key to .env",
		"docker-compose up -d",
		branding.Command("db", "init"),
		branding.Command("chat"),
	}
}

// WriteSummary prints the created project and the next steps to w.
func WriteSummary(w io.Writer, r *Result) {
	fmt.Fprintf(w, "Created %s project at %s\n", branding.DisplayName(), paths.AbbreviateHome(r.ProjectDir))
	fmt.Fprintf(w, "  domain: %s\n", r.Spec.Domain())
	fmt.Fprintf(w, "  port:   %d\n", r.Spec.Port())

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Next steps:")
	for _, step := range NextSteps(r) {
		fmt.Fprintf(w, "  %s\n", step)
	}
}
