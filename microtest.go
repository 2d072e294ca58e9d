// Package microtest is a minimal unit-testing harness.
//
// Tests are declared anywhere in the packages linked into a test binary and
// collect themselves into one registry while the program initializes:
//
//	var _ = microtest.Test("parses empty input", func() {
//		v, err := parse("")
//		assert.Nil(err)
//		assert.Equal(len(v), 0)
//	})
//
// The binary's main function only calls Main, which runs every registered
// test in registration order, prints a status line per test and a summary,
// and exits with 0 when every test passed and 1 otherwise.
package microtest

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"microtest/internal/cli"
	"microtest/internal/cli/commands"
	"microtest/internal/config"
	"microtest/registry"
	"microtest/report"
)

var version = "dev"

// Test registers a named test body in the process-wide registry.
func Test(name string, body func()) registry.Token {
	return registry.Register(name, body)
}

// Main runs the test binary's command line and exits the process.
func Main() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the command line against the process-wide registry and
// returns the exit status instead of exiting.
func Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	return Execute(ctx, registry.Default, args, out, errOut)
}

// Execute is Run over an explicit registry.
func Execute(ctx context.Context, reg *registry.Registry, args []string, out, errOut io.Writer) int {
	rootCmd := &cobra.Command{
		Use:     "microtest",
		Short:   "Run the tests linked into this binary",
		Long:    `Runs every test registered in this binary in registration order, prints a status line per test and a summary, and exits non-zero when any test fails.`,
		Version: version,
	}
	if args == nil {
		// cobra falls back to os.Args when given nil
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	cmds := commands.NewCommands(cfg, reg)
	cmds.Register(rootCmd, &flags, cfg)

	err := rootCmd.ExecuteContext(ctx)
	code := cli.ExitCode(err, report.ExitUsage)
	if err != nil && code == report.ExitUsage {
		io.WriteString(errOut, "Error: "+err.Error()+"\n")
	}
	return code
}
