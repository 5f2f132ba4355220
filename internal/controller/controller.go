package controller

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Stages groups the five stage implementations. Nil stages fall back to
// no-op or direct behaviour; Responder is required.
type Stages struct {
	Loader    ContextLoader
	Planner   Planner
	Runner    ToolRunner
	Responder Responder
	Recorder  Recorder
}

// Controller runs queries through its stages in order.
type Controller struct {
	stages Stages
	log    zerolog.Logger
}

// New returns a Controller over stages.
func New(stages Stages, log zerolog.Logger) (*Controller, error) {
	if stages.Responder == nil {
		return nil, fmt.Errorf("controller needs a responder")
	}
	if stages.Loader == nil {
		stages.Loader = NopLoader{}
	}
	if stages.Planner == nil {
		stages.Planner = DirectPlanner{}
	}
	if stages.Runner == nil {
		stages.Runner = NopRunner{}
	}
	if stages.Recorder == nil {
		stages.Recorder = NopRecorder{}
	}
	return &Controller{stages: stages, log: log}, nil
}

// ProcessQuery answers query for sessionID. A failure in any stage aborts
// the query; a failed remember step is logged and the response is still
// returned.
func (c *Controller) ProcessQuery(ctx context.Context, query, sessionID string) (string, error) {
	log := c.log.With().Str("session", sessionID).Logger()

	qc, err := c.stages.Loader.LoadContext(ctx, sessionID, query)
	if err != nil {
		return "", fmt.Errorf("loading context: %w", err)
	}

	plan, err := c.stages.Planner.Plan(ctx, query, qc)
	if err != nil {
		return "", fmt.Errorf("planning: %w", err)
	}
	log.Debug().Str("action", plan.Action).Int("tools", len(plan.Tools)).Msg("planned")

	results, err := c.stages.Runner.RunTools(ctx, plan)
	if err != nil {
		return "", fmt.Errorf("running tools: %w", err)
	}
	for _, r := range results {
		if r.Err != nil {
			log.Warn().Err(r.Err).Str("tool", r.Call.Tool).Str("input", r.Call.Input).Msg("tool failed")
		}
	}

	response, err := c.stages.Responder.Respond(ctx, query, qc, results)
	if err != nil {
		return "", err
	}

	if err := c.stages.Recorder.Remember(ctx, sessionID, query, response); err != nil {
		log.Warn().Err(err).Msg("remembering exchange failed")
	}
	return response, nil
}
