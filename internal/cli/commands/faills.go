package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"microtest/internal/config"
	"microtest/internal/storage"
)

// FaillsCommand handles the faills command
type FaillsCommand struct {
	config *config.Config
}

// NewFaillsCommand creates a new FaillsCommand
func NewFaillsCommand(cfg *config.Config) *FaillsCommand {
	return &FaillsCommand{config: cfg}
}

// Execute runs the command
func (fc *FaillsCommand) Execute(cmd *cobra.Command, args []string) error {
	st, release, err := openStorage(fc.config)
	if err != nil {
		return err
	}
	defer release()

	last, err := st.Load()
	if errors.Is(err, storage.ErrNoResults) {
		noResults(cmd, fc.config)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load last run: %w", err)
	}

	return newViewer(st, cmd.OutOrStdout(), fc.config.NoColor).View(last)
}
