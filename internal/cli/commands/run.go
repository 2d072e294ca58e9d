package commands

import (
	"time"

	"github.com/spf13/cobra"

	"microtest/internal/cli"
	"microtest/internal/config"
	"microtest/internal/ctxlog"
	"microtest/internal/domain"
	"microtest/registry"
	"microtest/report"
	"microtest/runner"
)

// RunCommand handles the run command
type RunCommand struct {
	config   *config.Config
	registry *registry.Registry
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, reg *registry.Registry) *RunCommand {
	return &RunCommand{
		config:   cfg,
		registry: reg,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := ctxlog.FromContext(ctx)
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	recorder := &report.Recorder{}
	reporters := report.Multi{recorder}
	if rc.config.Flags.Progress {
		reporters = append(reporters,
			report.NewProgress(rc.registry.Len(), errOut),
			report.NewConsole(out, errOut, rc.config.NoColor, report.FailuresOnly()),
		)
	} else {
		reporters = append(reporters, report.NewConsole(out, errOut, rc.config.NoColor))
	}

	var opts []runner.Option
	if rc.config.Flags.FailFast {
		opts = append(opts, runner.WithFailFast())
	}

	summary := runner.New(rc.registry, reporters, opts...).Run(ctx)
	runReport := domain.NewRunReport(summary, recorder.Results(), time.Now())

	// Saving is best effort: it never changes the exit status.
	st, release, err := openStorage(rc.config)
	if err != nil {
		logger.Warn("failed to save test results", "error", err)
	} else {
		defer release()
		if err := st.Save(runReport); err != nil {
			logger.Warn("failed to save test results", "storage", rc.config.Storage, "error", err)
		}
		if rc.config.Flags.OpenFaills && !summary.OK() {
			if err := newViewer(st, out, rc.config.NoColor).View(runReport); err != nil {
				logger.Warn("failed to open faills viewer", "error", err)
			}
		}
	}

	if code := report.ExitCode(summary); code != report.ExitOK {
		return &cli.ExitError{Code: code}
	}
	return nil
}
