package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"microtest/internal/config"
	"microtest/internal/ctxlog"
	"microtest/internal/storage"
	"microtest/internal/ui"
	"microtest/registry"
)

// ListCommand handles the list command
type ListCommand struct {
	config   *config.Config
	registry *registry.Registry
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, reg *registry.Registry) *ListCommand {
	return &ListCommand{
		config:   cfg,
		registry: reg,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	logger := ctxlog.FromContext(cmd.Context())

	// Failures of the last run are optional decoration.
	var failed map[string]struct{}
	st, release, err := openStorage(lc.config)
	if err == nil {
		defer release()
		last, loadErr := st.Load()
		switch {
		case loadErr == nil:
			failed = last.FailedNames()
		case !errors.Is(loadErr, storage.ErrNoResults):
			logger.Warn("failed to load last run", "error", loadErr)
		}
	} else {
		logger.Warn("failed to load last run", "error", err)
	}

	formatter := ui.NewFormatter(cmd.OutOrStdout(), cmd.ErrOrStderr(), lc.config.NoColor)
	formatter.PrintTestList(lc.registry.AllTests(), lc.registry.Duplicates(), failed)
	return nil
}
