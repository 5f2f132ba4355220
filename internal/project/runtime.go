package project

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/agentx-labs/expertkit/internal/agent"
	"github.com/agentx-labs/expertkit/internal/chat"
	"github.com/agentx-labs/expertkit/internal/controller"
	"github.com/agentx-labs/expertkit/internal/errors"
	"github.com/agentx-labs/expertkit/internal/logging"
	"github.com/agentx-labs/expertkit/internal/memory"
	"github.com/agentx-labs/expertkit/internal/tools"
)

// Options tweak runtime construction.
type Options struct {
	// Console receives log output in addition to the project log file.
	Console io.Writer
	// Provider replaces the configured model provider.
	Provider agent.Provider
}

// Runtime is a fully wired project.
type Runtime struct {
	Project    *Project
	Log        *logging.Logger
	Agent      *agent.Agent
	Memory     memory.Store
	Web        *tools.Web
	Controller *controller.Controller
	Chat       *chat.Service
}

// Build wires the runtime for p. Close releases what it opened.
func Build(ctx context.Context, p *Project, opts Options) (*Runtime, error) {
	cfg := p.Config
	log, err := logging.New(logging.Config{
		Level:     cfg.Logging.Level,
		File:      p.Path(cfg.Logging.File),
		Console:   opts.Console,
		Pretty:    true,
		Redaction: true,
	})
	if err != nil {
		return nil, errors.Wrap(errors.EIO, err.Error(), err)
	}
	rt := &Runtime{Project: p, Log: log}

	var a *agent.Agent
	if opts.Provider != nil {
		a, err = agent.NewWithProvider(p.Name(), "", p.AgentConfig(), opts.Provider)
	} else {
		a, err = agent.New(p.Name(), "", p.AgentConfig(), p.Credentials())
	}
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.Agent = a.WithLogger(log.Logger)

	rt.Memory, err = p.OpenMemory(ctx)
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.Web = tools.NewWeb()

	rt.Controller, err = controller.Build(cfg.Controller.Strategy, cfg.Controller.Remember, controller.Deps{
		Agent:  rt.Agent,
		Memory: rt.Memory,
		Web:    rt.Web,
		Log:    log.Logger,
	})
	if err != nil {
		rt.Close()
		return nil, errors.Wrap(errors.EInvalidConfig, err.Error(), err)
	}

	rt.Chat = chat.NewService(rt.Controller, log.Logger)
	log.Info().
		Str("project", p.Name()).
		Str("model", rt.Agent.Model()).
		Str("strategy", cfg.Controller.Strategy).
		Str("memory", cfg.Memory.Backend).
		Msg("runtime ready")
	return rt, nil
}

// UI returns the chat page settings.
func (r *Runtime) UI() chat.UI {
	return chat.UI{Title: r.Project.Config.UI.PageTitle, Icon: r.Project.Config.UI.PageIcon}
}

// Close releases the runtime's resources.
func (r *Runtime) Close() error {
	var errs []error
	if r.Web != nil {
		r.Web.Close()
	}
	if r.Memory != nil {
		errs = append(errs, r.Memory.Close())
	}
	if r.Log != nil {
		errs = append(errs, r.Log.Close())
	}
	return stderrors.Join(errs...)
}
