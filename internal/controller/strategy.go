package controller

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentx-labs/expertkit/internal/manifest"
	"github.com/agentx-labs/expertkit/internal/memory"
)

// Deps are the collaborators a strategy may use. Web is only needed by
// tool-augmented; Memory only when remembering.
type Deps struct {
	Agent      Answerer
	Memory     memory.Store
	Web        Fetcher
	WebTimeout time.Duration
	Log        zerolog.Logger
}

// Strategies lists the known strategy names.
func Strategies() []string {
	return []string{manifest.StrategyDirect, manifest.StrategyToolAugmented}
}

// Build assembles the controller for the named strategy.
func Build(strategy string, remember bool, deps Deps) (*Controller, error) {
	if deps.Agent == nil {
		return nil, fmt.Errorf("controller needs an agent")
	}
	stages := Stages{Responder: AgentResponder{Agent: deps.Agent}}

	switch strategy {
	case "", manifest.StrategyDirect:
	case manifest.StrategyToolAugmented:
		if deps.Web == nil {
			return nil, fmt.Errorf("strategy %s needs the web tool", strategy)
		}
		stages.Planner = URLPlanner{}
		stages.Runner = WebRunner{Web: deps.Web, Timeout: deps.WebTimeout}
	default:
		return nil, fmt.Errorf("unknown controller strategy %q (known: %v)", strategy, Strategies())
	}

	if remember {
		if deps.Memory == nil {
			return nil, fmt.Errorf("remember is enabled but no memory store is configured")
		}
		stages.Loader = MemoryLoader{Store: deps.Memory}
		stages.Recorder = MemoryRecorder{Store: deps.Memory}
	}
	return New(stages, deps.Log)
}
