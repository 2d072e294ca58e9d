package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"microtest/internal/domain"
)

// Status tags printed in front of each transcript line
const (
	TagRunning = "{ running}"
	TagOK      = "{      ok}"
	TagFailed  = "{  failed}"
	TagErrored = "{ errored}"
	TagSummary = "{ summary}"
)

// Formatter formats and displays output
type Formatter struct {
	out    io.Writer
	errOut io.Writer

	green  *color.Color
	red    *color.Color
	yellow *color.Color
	cyan   *color.Color
	white  *color.Color
}

// NewFormatter creates a new Formatter writing the transcript to out and the
// failure summary to errOut
func NewFormatter(out, errOut io.Writer, noColor bool) *Formatter {
	f := &Formatter{
		out:    out,
		errOut: errOut,
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed, color.Bold),
		yellow: color.New(color.FgYellow),
		cyan:   color.New(color.FgCyan),
		white:  color.New(color.FgWhite),
	}
	if noColor {
		for _, c := range []*color.Color{f.green, f.red, f.yellow, f.cyan, f.white} {
			c.DisableColor()
		}
	}
	return f
}

// PrintRunning prints the notice emitted before a test body runs
func (f *Formatter) PrintRunning(name string) {
	fmt.Fprintf(f.out, "%s %s\n", f.green.Sprint(TagRunning), name)
}

// PrintResult prints the outcome of one test, with its failure description
func (f *Formatter) PrintResult(r domain.RunResult) {
	switch r.Outcome {
	case domain.Passed:
		fmt.Fprintf(f.out, "%s %s\n", f.green.Sprint(TagOK), r.Name)
	case domain.Failed:
		fmt.Fprintln(f.out, f.red.Sprintf("%s %s", TagFailed, r.Name))
		fmt.Fprintf(f.out, "\t%s\n", f.red.Sprintf("Assertion failed: %s", r.Detail))
		f.printExtra(r.Extra)
	case domain.Errored:
		fmt.Fprintln(f.out, f.red.Sprintf("%s %s", TagErrored, r.Name))
		fmt.Fprintf(f.out, "\t%s\n", f.red.Sprintf("Panic: %s", r.Detail))
		f.printExtra(r.Extra)
	}
}

func (f *Formatter) printExtra(extra string) {
	if extra == "" {
		return
	}
	for _, line := range strings.Split(extra, "\n") {
		fmt.Fprintf(f.out, "\t%s\n", f.yellow.Sprint(line))
	}
}

// PrintSummary prints the final line: to out on success, to errOut otherwise
func (f *Formatter) PrintSummary(s domain.Summary) {
	if s.OK() {
		fmt.Fprintln(f.out, f.green.Sprintf("%s All tests succeeded!", TagSummary))
		return
	}
	line := fmt.Sprintf("%s %d tests failed (%.2f%%)", TagSummary, s.Unsuccessful(), s.FailureRate())
	if s.Errored > 0 {
		line += fmt.Sprintf(", %d errored", s.Errored)
	}
	fmt.Fprintln(f.errOut, f.red.Sprint(line))
}

// PrintMetaStats displays the meta statistics of a saved run
func (f *Formatter) PrintMetaStats(report *domain.RunReport) {
	meta := report.Meta

	fmt.Fprintln(f.out)
	f.cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	f.cyan.Fprintln(f.out, "║                    Test Execution Statistics                  ║")
	f.cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Total Tests", fmt.Sprint(meta.TotalTests), f.white},
		{"Passed Tests", fmt.Sprint(meta.PassedTests), f.green},
		{"Failed Tests", fmt.Sprint(meta.FailedTests), f.red},
		{"Errored Tests", fmt.Sprint(meta.ErroredTests), f.red},
		{"Failure Rate", fmt.Sprintf("%.2f%%", meta.FailureRate), f.white},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), f.white},
		{"Timestamp", meta.Timestamp, f.white},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ %s │\n", row.label, row.c.Sprintf("%-27s", row.value))
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	unsuccessful := meta.FailedTests + meta.ErroredTests
	if unsuccessful == 0 {
		f.green.Fprintln(f.out, "✓ All tests passed!")
		return
	}
	f.red.Fprintf(f.out, "✗ %d test(s) did not pass\n", unsuccessful)
	for i, d := range report.Details {
		connector := "├── "
		if i == len(report.Details)-1 {
			connector = "└── "
		}
		fmt.Fprintf(f.out, "%s%s %s\n", connector, f.red.Sprint(d.TestName), f.yellow.Sprintf("(%s)", d.Outcome))
	}
}

// PrintTestList prints the registered tests in run order. Names registered
// more than once are marked [D]; names that did not pass in the last run
// (failed may be nil) are marked [F].
func (f *Formatter) PrintTestList(tests []domain.TestCase, dups map[string]int, failed map[string]struct{}) {
	if len(tests) == 0 {
		f.yellow.Fprintln(f.out, "No tests registered")
		return
	}
	f.green.Fprintf(f.out, "Found %d registered test(s):\n", len(tests))

	for i, tc := range tests {
		connector := "├── "
		if i == len(tests)-1 {
			connector = "└── "
		}
		var markers string
		if _, ok := dups[tc.Name]; ok {
			markers += " " + f.yellow.Sprint("[D]")
		}
		if _, ok := failed[tc.Name]; ok {
			markers += " " + f.red.Sprint("[F]")
		}
		fmt.Fprintf(f.out, "%s%s%s\n", connector, f.cyan.Sprint(tc.Name), markers)
	}
}
