// Package runner executes every registered test in registration order,
// containing each test's failure at the test's own boundary.
package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"microtest/assert"
	"microtest/internal/ctxlog"
	"microtest/internal/domain"
	"microtest/registry"
	"microtest/report"
)

// Runner executes the tests of a registry
type Runner struct {
	registry *registry.Registry
	reporter report.Reporter
	failFast bool
	now      func() time.Time
}

// Option configures a Runner
type Option func(*Runner)

// WithFailFast stops the run after the first test that does not pass. Tests
// that were not run are not counted.
func WithFailFast() Option {
	return func(r *Runner) { r.failFast = true }
}

// WithClock replaces time.Now, for deterministic durations.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// New creates a Runner over reg reporting to rep
func New(reg *registry.Registry, rep report.Reporter, opts ...Option) *Runner {
	r := &Runner{
		registry: reg,
		reporter: rep,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run seals the registry and runs every test in order. The context is only
// checked between tests; a body that never returns blocks the run.
func (r *Runner) Run(ctx context.Context) domain.Summary {
	logger := ctxlog.FromContext(ctx)

	r.registry.Seal()
	tests := r.registry.AllTests()
	r.warnDuplicates(ctx)
	logger.Debug("starting run", "tests", len(tests), "fail_fast", r.failFast)

	var summary domain.Summary
	start := r.now()
	for i, tc := range tests {
		if err := ctx.Err(); err != nil {
			logger.Warn("run cancelled", "error", err, "not_run", len(tests)-i)
			break
		}

		r.reporter.Running(tc.Name)
		result := r.runTest(ctx, tc)
		summary.Add(result)
		r.reporter.Result(result)
		logger.Debug("test finished", "name", tc.Name, "outcome", result.Outcome.String(), "duration", result.Duration)

		if r.failFast && result.Outcome != domain.Passed {
			logger.Info("stopping after first failure", "name", tc.Name, "not_run", len(tests)-i-1)
			break
		}
	}
	summary.Duration = r.now().Sub(start)

	r.reporter.Summary(summary)
	return summary
}

func (r *Runner) warnDuplicates(ctx context.Context) {
	dups := r.registry.Duplicates()
	names := make([]string, 0, len(dups))
	for name := range dups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ctxlog.FromContext(ctx).Warn("duplicate test name", "name", name, "count", dups[name])
	}
}

func (r *Runner) runTest(ctx context.Context, tc domain.TestCase) domain.RunResult {
	start := r.now()
	outcome, detail, extra, stack := invoke(tc.Body)
	if stack != "" {
		ctxlog.FromContext(ctx).Debug("test panicked", "name", tc.Name, "panic", detail, "stack", stack)
	}
	return domain.RunResult{
		Name:     tc.Name,
		Outcome:  outcome,
		Detail:   detail,
		Extra:    extra,
		Duration: r.now().Sub(start),
	}
}

// invoke runs body on its own goroutine and waits for it, so that a panic or
// runtime.Goexit inside the body ends only that body. stack is set only for
// non-assertion panics.
func invoke(body func()) (outcome domain.Outcome, detail, extra, stack string) {
	outcome, detail = domain.Errored, "test body called runtime.Goexit"

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			var failure *assert.AssertionFailure
			if err, ok := rec.(error); ok && errors.As(err, &failure) {
				outcome, detail, extra = domain.Failed, failure.Description, failure.Detail
				return
			}
			outcome, detail = domain.Errored, fmt.Sprint(rec)
			stack = strings.TrimRight(string(debug.Stack()), "\n")
		}()

		body()
		outcome, detail = domain.Passed, ""
	}()
	<-done
	return outcome, detail, extra, stack
}
