package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"microtest/internal/config"
	"microtest/internal/storage"
	"microtest/internal/ui"
)

// StatsCommand handles the stats command
type StatsCommand struct {
	config *config.Config
}

// NewStatsCommand creates a new StatsCommand
func NewStatsCommand(cfg *config.Config) *StatsCommand {
	return &StatsCommand{config: cfg}
}

// Execute runs the command
func (sc *StatsCommand) Execute(cmd *cobra.Command, args []string) error {
	st, release, err := openStorage(sc.config)
	if err != nil {
		return err
	}
	defer release()

	last, err := st.Load()
	if errors.Is(err, storage.ErrNoResults) {
		noResults(cmd, sc.config)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load last run: %w", err)
	}

	ui.NewFormatter(cmd.OutOrStdout(), cmd.ErrOrStderr(), sc.config.NoColor).PrintMetaStats(last)
	return nil
}

func noResults(cmd *cobra.Command, cfg *config.Config) {
	c := color.New(color.FgYellow)
	if cfg.NoColor {
		c.DisableColor()
	}
	c.Fprintln(cmd.OutOrStdout(), "No saved test run found")
}
