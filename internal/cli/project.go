package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agentx-labs/expertkit/internal/errors"
	"github.com/agentx-labs/expertkit/internal/project"
	"github.com/spf13/cobra"
)

// projectDir is shared by every command that operates on a generated project.
var projectDir string

func addProjectFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&projectDir, "project", "p", "", "Project directory (default: nearest parent with configs/project.yaml)")
}

// openProject opens the project named by --project, or the one containing
// the working directory.
func openProject() (*project.Project, error) {
	start := projectDir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(errors.EIO, err.Error(), err)
		}
		start = wd
	}
	dir, err := project.Find(start)
	if err != nil {
		return nil, err
	}
	return project.Open(dir)
}

// buildRuntime opens the project and wires its runtime. Logs go to the
// project log file, and also to stderr with --verbose.
func buildRuntime(ctx context.Context) (*project.Runtime, error) {
	p, err := openProject()
	if err != nil {
		return nil, err
	}
	var console io.Writer
	if rootVerbose {
		console = os.Stderr
	}
	return project.Build(ctx, p, project.Options{Console: console})
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
