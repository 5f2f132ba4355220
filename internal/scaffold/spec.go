package scaffold

import (
	"strings"

	"github.com/agentx-labs/expertkit/internal/errors"
	"github.com/agentx-labs/expertkit/internal/paths"
)

// DefaultPort is the database port used when the caller supplies none.
const DefaultPort = paths.DefaultPort

// ProjectSpec identifies the project to create. It is immutable: build one
// with NewProjectSpec and read it through its accessors.
type ProjectSpec struct {
	domain string
	port   int
	name   string
}

// NewProjectSpec validates the caller's input and derives the project name.
// The domain is used verbatim, so "pinescript" yields "pinescript-expert".
func NewProjectSpec(domain string, port int) (ProjectSpec, error) {
	if strings.TrimSpace(domain) == "" {
		return ProjectSpec{}, errors.New(errors.EInvalidProjectSpec, "domain must not be empty")
	}
	if domain == "." || domain == ".." || strings.ContainsAny(domain, `/\`) {
		return ProjectSpec{}, errors.Newf(errors.EInvalidProjectSpec, "invalid domain %q: must be a single path component", domain)
	}
	if port <= 0 || port > 65535 {
		return ProjectSpec{}, errors.Newf(errors.EInvalidProjectSpec, "invalid port %d: must be between 1 and 65535", port)
	}
	return ProjectSpec{
		domain: domain,
		port:   port,
		name:   paths.ProjectName(domain),
	}, nil
}

// Domain returns the domain identifier, e.g. "pinescript".
func (s ProjectSpec) Domain() string { return s.domain }

// Port returns the database port written into the project.
func (s ProjectSpec) Port() int { return s.port }

// Name returns the project directory name, e.g. "pinescript-expert".
func (s ProjectSpec) Name() string { return s.name }
