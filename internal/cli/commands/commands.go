package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"microtest/internal/cli"
	"microtest/internal/config"
	"microtest/internal/ctxlog"
	"microtest/internal/storage"
	"microtest/internal/ui"
	"microtest/registry"
)

// newViewer builds the failure viewer opened by faills and --open-faills.
var newViewer = func(st storage.Storage, out io.Writer, noColor bool) ui.Viewer {
	return ui.NewErrorViewer(st, out, noColor)
}

// Commands holds all CLI commands
type Commands struct {
	Run    *RunCommand
	List   *ListCommand
	Stats  *StatsCommand
	Faills *FaillsCommand
}

// NewCommands creates all commands with dependencies. cfg is filled in by
// the root command's PersistentPreRunE before any command executes.
func NewCommands(cfg *config.Config, reg *registry.Registry) *Commands {
	return &Commands{
		Run:    NewRunCommand(cfg, reg),
		List:   NewListCommand(cfg, reg),
		Stats:  NewStatsCommand(cfg),
		Faills: NewFaillsCommand(cfg),
	}
}

// Register registers all commands with cobra. The root command itself runs
// the tests, so a test binary without arguments behaves like "run".
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.Args = cobra.NoArgs
	rootCmd.RunE = c.Run.Execute
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *loaded
		logger := ctxlog.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
		cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
		return nil
	}

	persistent := rootCmd.PersistentFlags()
	persistent.BoolVar(&flags.NoColor, "no-color", false, "Disable colored output (also set by NO_COLOR)")
	persistent.StringVar(&flags.Storage, "storage", "", "Results storage: json, mysql or none (default from MICROTEST_STORAGE or json)")
	persistent.StringVar(&flags.LogLevel, "log-level", "", "Framework log level: debug, info, warn or error")
	persistent.StringVar(&flags.LogFormat, "log-format", "", "Framework log format: text or json")

	addRunFlags(rootCmd.Flags(), flags)

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run all registered tests",
		Long:  "Run every registered test in registration order and report pass/fail with a final summary",
		Args:  cobra.NoArgs,
		RunE:  c.Run.Execute,
	}
	addRunFlags(runCmd.Flags(), flags)
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered tests",
		Long:  "List registered tests in run order without executing them, marking duplicates and last-run failures",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	rootCmd.AddCommand(listCmd)

	// Stats command
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics of the last run",
		Args:  cobra.NoArgs,
		RunE:  c.Stats.Execute,
	}
	rootCmd.AddCommand(statsCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:   "faills",
		Short: "View test failures interactively",
		Long:  "Display the failures of the last run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Faills.Execute,
	}
	rootCmd.AddCommand(faillsCmd)
}

func addRunFlags(fs *pflag.FlagSet, flags *cli.Flags) {
	fs.BoolVar(&flags.Progress, "progress", false, "Show a progress bar instead of per-test lines")
	fs.BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first test failure")
	fs.BoolVar(&flags.NoSave, "no-save", false, "Do not save the results of this run")
	fs.BoolVar(&flags.OpenFaills, "open-faills", false, "Open the faills viewer when the run finishes with failures")
}

// openStorage opens the configured storage; the returned func releases it.
func openStorage(cfg *config.Config) (storage.Storage, func(), error) {
	st, err := storage.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	release := func() {
		if c, ok := st.(io.Closer); ok {
			c.Close()
		}
	}
	return st, release, nil
}
