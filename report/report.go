// Package report turns runner events into the test transcript and the
// process exit status.
package report

import (
	"io"

	"microtest/internal/domain"
	"microtest/internal/ui"
)

// Exit statuses of a test binary
const (
	ExitOK          = 0
	ExitTestsFailed = 1
	ExitUsage       = 2
)

// ExitCode returns ExitOK when every test that ran passed, ExitTestsFailed otherwise.
func ExitCode(s domain.Summary) int {
	if s.OK() {
		return ExitOK
	}
	return ExitTestsFailed
}

// Reporter receives the events of a run as they happen.
type Reporter interface {
	Running(name string)
	Result(r domain.RunResult)
	Summary(s domain.Summary)
}

// Console prints the status line transcript.
type Console struct {
	f            *ui.Formatter
	failuresOnly bool
	pending      []domain.RunResult
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// FailuresOnly suppresses the running and ok lines and prints failures
// together with the summary. Used when a progress bar owns the terminal.
func FailuresOnly() ConsoleOption {
	return func(c *Console) { c.failuresOnly = true }
}

// NewConsole creates a Console writing the transcript to out and the failing
// summary line to errOut.
func NewConsole(out, errOut io.Writer, noColor bool, opts ...ConsoleOption) *Console {
	c := &Console{f: ui.NewFormatter(out, errOut, noColor)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Console) Running(name string) {
	if !c.failuresOnly {
		c.f.PrintRunning(name)
	}
}

func (c *Console) Result(r domain.RunResult) {
	if !c.failuresOnly {
		c.f.PrintResult(r)
		return
	}
	if r.Outcome != domain.Passed {
		c.pending = append(c.pending, r)
	}
}

func (c *Console) Summary(s domain.Summary) {
	for _, r := range c.pending {
		c.f.PrintResult(r)
	}
	c.pending = nil
	c.f.PrintSummary(s)
}

// Progress drives a progress bar from run events.
type Progress struct {
	bar            *ui.ProgressBar
	passed, failed int
}

// NewProgress creates a progress reporter over total tests writing to w.
func NewProgress(total int, w io.Writer) *Progress {
	return &Progress{bar: ui.NewProgressBar(total, w)}
}

func (p *Progress) Running(string) {}

func (p *Progress) Result(r domain.RunResult) {
	if r.Outcome == domain.Passed {
		p.passed++
	} else {
		p.failed++
	}
	p.bar.Update(p.passed, p.failed)
}

func (p *Progress) Summary(domain.Summary) {
	p.bar.Finish()
}

// Recorder keeps every result and the summary in memory.
type Recorder struct {
	results []domain.RunResult
	summary domain.Summary
	done    bool
}

func (r *Recorder) Running(string) {}

func (r *Recorder) Result(res domain.RunResult) {
	r.results = append(r.results, res)
}

func (r *Recorder) Summary(s domain.Summary) {
	r.summary = s
	r.done = true
}

// Results returns the recorded results in run order.
func (r *Recorder) Results() []domain.RunResult {
	return r.results
}

// RunSummary returns the summary and whether the run has finished.
func (r *Recorder) RunSummary() (domain.Summary, bool) {
	return r.summary, r.done
}

// Multi fans events out to several reporters in order.
type Multi []Reporter

func (m Multi) Running(name string) {
	for _, r := range m {
		r.Running(name)
	}
}

func (m Multi) Result(res domain.RunResult) {
	for _, r := range m {
		r.Result(res)
	}
}

func (m Multi) Summary(s domain.Summary) {
	for _, r := range m {
		r.Summary(s)
	}
}
